package memory

// LifecycleIndex keeps trip start and end positions in two independent logs.
type LifecycleIndex struct {
	Begins *TripPointLog
	Ends   *TripPointLog
}

// NewLifecycleIndex creates an index with empty begin and end logs
func NewLifecycleIndex() *LifecycleIndex {
	return &LifecycleIndex{
		Begins: NewTripPointLog(),
		Ends:   NewTripPointLog(),
	}
}

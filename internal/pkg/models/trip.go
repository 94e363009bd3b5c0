package models

// TripID is the caller-supplied trip identifier. Uniqueness is up to the caller.
type TripID int64

// TripPoint is one observed position of a trip
type TripPoint struct {
	TripID TripID `json:"trip_id"`
	Point  Point  `json:"point"`
}

// FareRecord is the settled fare of a trip
type FareRecord struct {
	TripID TripID  `json:"trip_id"`
	Amount float64 `json:"amount"`
}

// OccupancySample records how many trips were active right after a begin or end call
type OccupancySample struct {
	Seq         uint64 `json:"seq"`
	Timestamp   int64  `json:"timestamp"` // unix seconds
	ActiveCount int32  `json:"active_count"`
}

// NumFare is the result of a started-or-stopped query
type NumFare struct {
	NumTrips   int32   `json:"num_trips"`
	DollarFare float64 `json:"dollar_fare"`
}

// TripPointRequest is the body of begin and update calls
type TripPointRequest struct {
	Point Point `json:"point"`
}

// TripEndRequest is the body of an end call
type TripEndRequest struct {
	Point        Point   `json:"point"`
	DollarAmount float64 `json:"dollar_amount"`
}

// TripCountResponse carries a trip count
type TripCountResponse struct {
	NumTrips int32 `json:"num_trips"`
}

// TripEventKind identifies the lifecycle step of a TripEvent
type TripEventKind string

const (
	TripEventBegin  TripEventKind = "begin"
	TripEventUpdate TripEventKind = "update"
	TripEventEnd    TripEventKind = "end"
)

// TripEvent is the message published on the trip.* NATS subjects
type TripEvent struct {
	TripID       TripID        `json:"trip_id"`
	Kind         TripEventKind `json:"kind,omitempty"`
	Point        Point         `json:"point"`
	DollarAmount float64       `json:"dollar_amount,omitempty"`
}

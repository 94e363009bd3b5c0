package constants

// Redis key formats
const (
	// KeyTripFares is a hash of trip id -> dollar fare
	KeyTripFares = "trips:fares"
)

package constants

// NATS Subjects
const (
	// Trip lifecycle events
	SubjectTripBegin  = "trip.begin"
	SubjectTripUpdate = "trip.update"
	SubjectTripEnd    = "trip.end"
)

// TripSubjects lists every subject the trips service consumes.
var TripSubjects = []string{SubjectTripBegin, SubjectTripUpdate, SubjectTripEnd}

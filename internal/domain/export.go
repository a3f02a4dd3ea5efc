package domain

// ExportRow is a single row in a subject's itinerary export.
// It is a flat, denormalized view: one row per destination, with trip fields
// repeated for every destination on that trip. Trips with no destinations
// yield one row with zero values for all destination fields.
type ExportRow struct {
	// Trip fields, repeated for every destination on the trip.
	TripID        string
	TripTitle     string
	TripCountry   string
	TripCity      string
	TripStartDate string // "2006-01-02" formatted date
	TripEndDate   string

	// Destination fields, zero values when the trip has no destinations.
	DestinationName string
	DestinationType string
	Address         string
	VisitDate       string // empty string when unscheduled
	PriorityLevel   int    // 0 when the trip has no destinations
	Completed       bool
}

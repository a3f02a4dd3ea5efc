package domain

import "time"

// Profile is the one-to-one extension of a user, keyed directly on the
// subject ID (no surrogate key). Created on first write via upsert; every
// field uses full-replace semantics on update.
type Profile struct {
	SubjectID            string
	DisplayName          string
	Location             string
	LocationLat          *float64
	LocationLng          *float64
	TravelStyle          string
	FavoriteDestinations string
	Bio                  string
	ProfilePictureURL    string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TravelerStats aggregates a subject's activity across all their trips.
type TravelerStats struct {
	TotalTrips            int
	FavoriteTrips         int
	CountriesVisited      int // distinct non-empty countries
	TotalDestinations     int
	CompletedDestinations int
	TotalPhotos           int
}

package handler

import (
	"net/http"
	"time"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// profileRequest is the JSON body of PUT /user/profile. Every field is
// full-replace: the stored profile becomes exactly what the request says.
type profileRequest struct {
	DisplayName          string   `json:"display_name"`
	Location             string   `json:"location"`
	LocationLat          *float64 `json:"location_lat"`
	LocationLng          *float64 `json:"location_lng"`
	TravelStyle          string   `json:"travel_style"`
	FavoriteDestinations string   `json:"favorite_destinations"`
	Bio                  string   `json:"bio"`
	ProfilePictureURL    string   `json:"profile_picture_url"`
}

// profileResponse is the JSON representation of a profile.
type profileResponse struct {
	SubjectID            string    `json:"subject_id"`
	DisplayName          string    `json:"display_name,omitempty"`
	Location             string    `json:"location,omitempty"`
	LocationLat          *float64  `json:"location_lat,omitempty"`
	LocationLng          *float64  `json:"location_lng,omitempty"`
	TravelStyle          string    `json:"travel_style,omitempty"`
	FavoriteDestinations string    `json:"favorite_destinations,omitempty"`
	Bio                  string    `json:"bio,omitempty"`
	ProfilePictureURL    string    `json:"profile_picture_url,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// travelerStatsResponse is the JSON body of GET /user/profile/stats.
type travelerStatsResponse struct {
	TotalTrips            int `json:"total_trips"`
	FavoriteTrips         int `json:"favorite_trips"`
	CountriesVisited      int `json:"countries_visited"`
	TotalDestinations     int `json:"total_destinations"`
	CompletedDestinations int `json:"completed_destinations"`
	TotalPhotos           int `json:"total_photos"`
}

// GetProfile handles GET /user/profile. 404 until the first PUT creates one.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	profile, err := s.profile.Get(r.Context(), ident.SubjectID)
	if err != nil {
		respondDomainError(w, r, err, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(profile))
}

// PutProfile handles PUT /user/profile, creating the profile on first write.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	profile, err := s.profile.Put(r.Context(), domain.Profile{
		SubjectID:            ident.SubjectID,
		DisplayName:          req.DisplayName,
		Location:             req.Location,
		LocationLat:          req.LocationLat,
		LocationLng:          req.LocationLng,
		TravelStyle:          req.TravelStyle,
		FavoriteDestinations: req.FavoriteDestinations,
		Bio:                  req.Bio,
		ProfilePictureURL:    req.ProfilePictureURL,
	})
	if err != nil {
		respondDomainError(w, r, err, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(profile))
}

// GetTravelerStats handles GET /user/profile/stats.
func (s *Server) GetTravelerStats(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	stats, err := s.profile.TravelerStats(r.Context(), ident.SubjectID)
	if err != nil {
		respondDomainError(w, r, err, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, travelerStatsResponse{
		TotalTrips:            stats.TotalTrips,
		FavoriteTrips:         stats.FavoriteTrips,
		CountriesVisited:      stats.CountriesVisited,
		TotalDestinations:     stats.TotalDestinations,
		CompletedDestinations: stats.CompletedDestinations,
		TotalPhotos:           stats.TotalPhotos,
	})
}

func profileToResponse(p domain.Profile) profileResponse {
	return profileResponse{
		SubjectID:            p.SubjectID,
		DisplayName:          p.DisplayName,
		Location:             p.Location,
		LocationLat:          p.LocationLat,
		LocationLng:          p.LocationLng,
		TravelStyle:          p.TravelStyle,
		FavoriteDestinations: p.FavoriteDestinations,
		Bio:                  p.Bio,
		ProfilePictureURL:    p.ProfilePictureURL,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

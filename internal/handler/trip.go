package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// tripRequest is the JSON body of POST /trips and PUT /trips/{id}.
// Core fields are plain values (full-replace); enrichment fields are pointers
// so an update can leave them untouched by omitting them.
type tripRequest struct {
	Title         string             `json:"title"`
	Country       string             `json:"country"`
	City          string             `json:"city"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Notes         string             `json:"notes"`
	ImageURL      string             `json:"image_url"`
	TripType      *string            `json:"trip_type"`
	Budget        *float64           `json:"budget"`
	TravelerCount *int               `json:"traveler_count"`
	IsFavorite    *bool              `json:"is_favorite"`
	TripRating    *int               `json:"trip_rating"`
}

// ratingRequest is the JSON body of PATCH /trips/{id}/rating.
type ratingRequest struct {
	Rating int `json:"rating"`
}

// tripResponse is the enriched JSON representation of a trip.
type tripResponse struct {
	ID               uuid.UUID          `json:"id"`
	Title            string             `json:"title"`
	Country          string             `json:"country"`
	City             string             `json:"city"`
	StartDate        openapi_types.Date `json:"start_date"`
	EndDate          openapi_types.Date `json:"end_date"`
	Notes            string             `json:"notes,omitempty"`
	ImageURL         string             `json:"image_url,omitempty"`
	TripType         string             `json:"trip_type"`
	Budget           *float64           `json:"budget,omitempty"`
	TravelerCount    int                `json:"traveler_count"`
	IsFavorite       bool               `json:"is_favorite"`
	TripRating       *int               `json:"trip_rating,omitempty"`
	DestinationCount int                `json:"destination_count"`
	PhotoCount       int                `json:"photo_count"`
	TripStatus       string             `json:"trip_status"`
	DurationDays     int                `json:"duration_days"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// tripStatsResponse is the JSON body of GET /trips/{id}/stats.
type tripStatsResponse struct {
	TotalDestinations     int `json:"total_destinations"`
	CompletedDestinations int `json:"completed_destinations"`
	MustSeeDestinations   int `json:"must_see_destinations"`
	TotalPhotos           int `json:"total_photos"`
	ProgressPercentage    int `json:"progress_percentage"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(ident.SubjectID, req))
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created, time.Now().UTC()))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.List(r.Context(), ident.SubjectID)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	now := time.Now().UTC()
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t, now)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), ident.SubjectID, id)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip, time.Now().UTC()))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	upd := domain.TripUpdate{
		ID:             id,
		OwnerSubjectID: ident.SubjectID,
		Title:          req.Title,
		Country:        req.Country,
		City:           req.City,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		Notes:          req.Notes,
		ImageURL:       req.ImageURL,
		TripType:       req.TripType,
		Budget:         req.Budget,
		TravelerCount:  req.TravelerCount,
		IsFavorite:     req.IsFavorite,
		TripRating:     req.TripRating,
	}

	updated, err := s.trips.Update(r.Context(), upd)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated, time.Now().UTC()))
}

// DeleteTrip handles DELETE /trips/{id}.
// Deleting a trip removes its destinations and photos as well.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), ident.SubjectID, id); err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleTripFavorite handles PATCH /trips/{id}/favorite.
func (s *Server) ToggleTripFavorite(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	trip, err := s.trips.ToggleFavorite(r.Context(), ident.SubjectID, id)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip, time.Now().UTC()))
}

// SetTripRating handles PATCH /trips/{id}/rating.
func (s *Server) SetTripRating(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	trip, err := s.trips.SetRating(r.Context(), ident.SubjectID, id, req.Rating)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip, time.Now().UTC()))
}

// GetTripStats handles GET /trips/{id}/stats.
func (s *Server) GetTripStats(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	stats, err := s.trips.Stats(r.Context(), ident.SubjectID, id)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripStatsResponse{
		TotalDestinations:     stats.TotalDestinations,
		CompletedDestinations: stats.CompletedDestinations,
		MustSeeDestinations:   stats.MustSeeDestinations,
		TotalPhotos:           stats.TotalPhotos,
		ProgressPercentage:    stats.ProgressPercentage,
	})
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a create request body into a domain.Trip.
// Omitted enrichment fields become zero values; the service applies defaults.
func requestToTrip(subject string, req tripRequest) domain.Trip {
	t := domain.Trip{
		OwnerSubjectID: subject,
		Title:          req.Title,
		Country:        req.Country,
		City:           req.City,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		Notes:          req.Notes,
		ImageURL:       req.ImageURL,
		Budget:         req.Budget,
		TripRating:     req.TripRating,
	}
	if req.TripType != nil {
		t.TripType = *req.TripType
	}
	if req.TravelerCount != nil {
		t.TravelerCount = *req.TravelerCount
	}
	if req.IsFavorite != nil {
		t.IsFavorite = *req.IsFavorite
	}
	return t
}

// tripToResponse converts a domain.Trip into its enriched JSON form.
// TripStatus and DurationDays are derived here — they are presentation
// values, never stored.
func tripToResponse(t domain.Trip, now time.Time) tripResponse {
	return tripResponse{
		ID:               t.ID,
		Title:            t.Title,
		Country:          t.Country,
		City:             t.City,
		StartDate:        openapi_types.Date{Time: t.StartDate},
		EndDate:          openapi_types.Date{Time: t.EndDate},
		Notes:            t.Notes,
		ImageURL:         t.ImageURL,
		TripType:         t.TripType,
		Budget:           t.Budget,
		TravelerCount:    t.TravelerCount,
		IsFavorite:       t.IsFavorite,
		TripRating:       t.TripRating,
		DestinationCount: t.DestinationCount,
		PhotoCount:       t.PhotoCount,
		TripStatus:       t.Status(now),
		DurationDays:     t.DurationDays(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

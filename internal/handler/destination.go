package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// destinationRequest is the JSON body of POST /trips/{tripId}/destinations
// and PUT /destinations/{id}. Like trips: core fields full-replace,
// enrichment fields pointer/keep-if-absent.
type destinationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index"`

	DestinationType *string             `json:"destination_type"`
	Address         *string             `json:"address"`
	VisitDate       *openapi_types.Date `json:"visit_date"`
	VisitTime       *string             `json:"visit_time"`
	PriceRange      *string             `json:"price_range"`
	PriorityLevel   *int                `json:"priority_level"`
	IsCompleted     *bool               `json:"is_completed"`
	LocationLat     *float64            `json:"location_lat"`
	LocationLng     *float64            `json:"location_lng"`
}

// destinationResponse is the JSON representation of a destination.
type destinationResponse struct {
	ID              uuid.UUID           `json:"id"`
	TripID          uuid.UUID           `json:"trip_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	ImageURL        string              `json:"image_url,omitempty"`
	OrderIndex      int                 `json:"order_index"`
	DestinationType string              `json:"destination_type,omitempty"`
	Address         string              `json:"address,omitempty"`
	VisitDate       *openapi_types.Date `json:"visit_date,omitempty"`
	VisitTime       string              `json:"visit_time,omitempty"`
	PriceRange      string              `json:"price_range,omitempty"`
	PriorityLevel   int                 `json:"priority_level"`
	IsCompleted     bool                `json:"is_completed"`
	LocationLat     *float64            `json:"location_lat,omitempty"`
	LocationLng     *float64            `json:"location_lng,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// CreateDestination handles POST /trips/{tripId}/destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	created, err := s.destinations.Create(r.Context(), ident.SubjectID, requestToDestination(tripID, req))
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// ListDestinations handles GET /trips/{tripId}/destinations.
// Results come back in itinerary order: priority, then visit date, then
// order index.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	dests, err := s.destinations.ListByTrip(r.Context(), ident.SubjectID, tripID)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	out := make([]destinationResponse, len(dests))
	for i, d := range dests {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "destination not found")
	if !ok {
		return
	}

	dest, err := s.destinations.GetByID(r.Context(), ident.SubjectID, id)
	if err != nil {
		respondDomainError(w, r, err, "destination not found")
		return
	}

	writeJSON(w, http.StatusOK, destinationToResponse(dest))
}

// UpdateDestination handles PUT /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "destination not found")
	if !ok {
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	upd := domain.DestinationUpdate{
		ID:              id,
		OwnerSubjectID:  ident.SubjectID,
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		OrderIndex:      req.OrderIndex,
		DestinationType: req.DestinationType,
		Address:         req.Address,
		VisitDate:       dateToTimePtr(req.VisitDate),
		VisitTime:       req.VisitTime,
		PriceRange:      req.PriceRange,
		PriorityLevel:   req.PriorityLevel,
		IsCompleted:     req.IsCompleted,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
	}

	updated, err := s.destinations.Update(r.Context(), upd)
	if err != nil {
		respondDomainError(w, r, err, "destination not found")
		return
	}

	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "destination not found")
	if !ok {
		return
	}

	if err := s.destinations.Delete(r.Context(), ident.SubjectID, id); err != nil {
		respondDomainError(w, r, err, "destination not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleDestinationCompleted handles PATCH /destinations/{id}/complete.
func (s *Server) ToggleDestinationCompleted(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "destination not found")
	if !ok {
		return
	}

	dest, err := s.destinations.ToggleCompleted(r.Context(), ident.SubjectID, id)
	if err != nil {
		respondDomainError(w, r, err, "destination not found")
		return
	}

	writeJSON(w, http.StatusOK, destinationToResponse(dest))
}

// --- mapping helpers --------------------------------------------------------

func requestToDestination(tripID uuid.UUID, req destinationRequest) domain.Destination {
	d := domain.Destination{
		TripID:      tripID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		OrderIndex:  req.OrderIndex,
		VisitDate:   dateToTimePtr(req.VisitDate),
		LocationLat: req.LocationLat,
		LocationLng: req.LocationLng,
	}
	if req.DestinationType != nil {
		d.DestinationType = *req.DestinationType
	}
	if req.Address != nil {
		d.Address = *req.Address
	}
	if req.VisitTime != nil {
		d.VisitTime = *req.VisitTime
	}
	if req.PriceRange != nil {
		d.PriceRange = *req.PriceRange
	}
	if req.PriorityLevel != nil {
		d.PriorityLevel = *req.PriorityLevel
	}
	if req.IsCompleted != nil {
		d.IsCompleted = *req.IsCompleted
	}
	return d
}

func destinationToResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		ID:              d.ID,
		TripID:          d.TripID,
		Name:            d.Name,
		Description:     d.Description,
		ImageURL:        d.ImageURL,
		OrderIndex:      d.OrderIndex,
		DestinationType: d.DestinationType,
		Address:         d.Address,
		VisitDate:       timeToDatePtr(d.VisitDate),
		VisitTime:       d.VisitTime,
		PriceRange:      d.PriceRange,
		PriorityLevel:   d.PriorityLevel,
		IsCompleted:     d.IsCompleted,
		LocationLat:     d.LocationLat,
		LocationLng:     d.LocationLng,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func dateToTimePtr(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func timeToDatePtr(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

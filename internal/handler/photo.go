package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// photoRequest is the JSON body of POST /trips/{tripId}/photos.
// DestinationID is optional; when present the destination must belong to the
// same trip.
type photoRequest struct {
	ImageURL      string     `json:"image_url"`
	Caption       string     `json:"caption"`
	DestinationID *uuid.UUID `json:"destination_id"`
}

// photoResponse is the JSON representation of a photo.
type photoResponse struct {
	ID            uuid.UUID  `json:"id"`
	TripID        uuid.UUID  `json:"trip_id"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	ImageURL      string     `json:"image_url"`
	Caption       string     `json:"caption,omitempty"`
	UploadedAt    time.Time  `json:"uploaded_at"`
}

// CreatePhoto handles POST /trips/{tripId}/photos.
func (s *Server) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	var req photoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return
	}

	created, err := s.photos.Create(r.Context(), ident.SubjectID, domain.Photo{
		TripID:        tripID,
		DestinationID: req.DestinationID,
		ImageURL:      req.ImageURL,
		Caption:       req.Caption,
	})
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, photoToResponse(created))
}

// ListPhotos handles GET /trips/{tripId}/photos. Newest first.
func (s *Server) ListPhotos(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripId", "trip not found")
	if !ok {
		return
	}

	photos, err := s.photos.ListByTrip(r.Context(), ident.SubjectID, tripID)
	if err != nil {
		respondDomainError(w, r, err, "trip not found")
		return
	}

	out := make([]photoResponse, len(photos))
	for i, p := range photos {
		out[i] = photoToResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// DeletePhoto handles DELETE /photos/{id}.
func (s *Server) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ident, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "photo not found")
	if !ok {
		return
	}

	if err := s.photos.Delete(r.Context(), ident.SubjectID, id); err != nil {
		respondDomainError(w, r, err, "photo not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func photoToResponse(p domain.Photo) photoResponse {
	return photoResponse{
		ID:            p.ID,
		TripID:        p.TripID,
		DestinationID: p.DestinationID,
		ImageURL:      p.ImageURL,
		Caption:       p.Caption,
		UploadedAt:    p.UploadedAt,
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is an image attached to a trip. DestinationID is nil for trip-level
// photos; when set, the destination must belong to the same trip.
// UploadedAt is server-assigned at insert time.
type Photo struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	DestinationID *uuid.UUID
	ImageURL      string
	Caption       string
	UploadedAt    time.Time
}

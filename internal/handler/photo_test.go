package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/handler"
)

// mockPhotoServicer is a test double for handler.PhotoServicer.
type mockPhotoServicer struct {
	create     func(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error)
	listByTrip func(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error)
	delete     func(ctx context.Context, subject string, id uuid.UUID) error
}

func (m *mockPhotoServicer) Create(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error) {
	return m.create(ctx, subject, photo)
}
func (m *mockPhotoServicer) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error) {
	return m.listByTrip(ctx, subject, tripID)
}
func (m *mockPhotoServicer) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	return m.delete(ctx, subject, id)
}

var _ handler.PhotoServicer = (*mockPhotoServicer)(nil)

func newPhotoHandler(svc handler.PhotoServicer) http.Handler {
	return handler.Routes(handler.NewServer(nil, nil, svc, nil, nil), stubAuth)
}

func TestCreatePhoto_201(t *testing.T) {
	tripID := uuid.New()
	destID := uuid.New()
	var received domain.Photo
	svc := &mockPhotoServicer{
		create: func(_ context.Context, subject string, photo domain.Photo) (domain.Photo, error) {
			assert.Equal(t, testSubject, subject)
			received = photo
			photo.ID = uuid.New()
			photo.UploadedAt = time.Now().UTC()
			return photo, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"image_url":      "https://img.example.com/duomo.jpg",
		"caption":        "Duomo at dawn",
		"destination_id": destID.String(),
	})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/photos", body)
	rec := httptest.NewRecorder()

	newPhotoHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, tripID, received.TripID)
	require.NotNil(t, received.DestinationID)
	assert.Equal(t, destID, *received.DestinationID)
}

func TestCreatePhoto_400_ForeignDestination(t *testing.T) {
	svc := &mockPhotoServicer{
		create: func(_ context.Context, _ string, _ domain.Photo) (domain.Photo, error) {
			return domain.Photo{}, fmt.Errorf("%w: destination does not belong to this trip", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"image_url":      "https://img.example.com/duomo.jpg",
		"destination_id": uuid.NewString(),
	})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/photos", body)
	rec := httptest.NewRecorder()

	newPhotoHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "destination does not belong to this trip", resp.Error.Message)
}

func TestListPhotos_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockPhotoServicer{
		listByTrip: func(_ context.Context, _ string, _ uuid.UUID) ([]domain.Photo, error) {
			return []domain.Photo{
				{ID: uuid.New(), TripID: tripID, ImageURL: "https://img.example.com/1.jpg"},
				{ID: uuid.New(), TripID: tripID, ImageURL: "https://img.example.com/2.jpg"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/photos", nil)
	rec := httptest.NewRecorder()

	newPhotoHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestDeletePhoto_204(t *testing.T) {
	id := uuid.New()
	svc := &mockPhotoServicer{
		delete: func(_ context.Context, _ string, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/photos/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newPhotoHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeletePhoto_404(t *testing.T) {
	svc := &mockPhotoServicer{
		delete: func(_ context.Context, _ string, _ uuid.UUID) error {
			return fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/photos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newPhotoHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

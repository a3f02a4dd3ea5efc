package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/backend/spec"
)

// Routes mounts every API endpoint on a fresh chi router. The health and
// OpenAPI endpoints are public; everything else sits behind the supplied
// authentication middleware. Cross-cutting middleware (request ID, logging,
// CORS, body-size limit) is applied by the caller so tests can mount the
// routes bare.
func Routes(s *Server, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetHome)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Patch("/favorite", s.ToggleTripFavorite)
				r.Patch("/rating", s.SetTripRating)
				r.Get("/stats", s.GetTripStats)

				r.Post("/destinations", s.CreateDestination)
				r.Get("/destinations", s.ListDestinations)
				r.Post("/photos", s.CreatePhoto)
				r.Get("/photos", s.ListPhotos)
			})
		})

		r.Route("/destinations/{id}", func(r chi.Router) {
			r.Get("/", s.GetDestination)
			r.Put("/", s.UpdateDestination)
			r.Delete("/", s.DeleteDestination)
			r.Patch("/complete", s.ToggleDestinationCompleted)
		})

		r.Delete("/photos/{id}", s.DeletePhoto)

		r.Route("/user/profile", func(r chi.Router) {
			r.Get("/", s.GetProfile)
			r.Put("/", s.PutProfile)
			r.Get("/stats", s.GetTravelerStats)
		})

		r.Get("/export", s.GetExport)
	})

	return r
}

// serveOpenAPI writes the embedded OpenAPI document. Serving it from the
// binary keeps the published contract in sync with the running code.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

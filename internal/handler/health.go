package handler

import "net/http"

// GetHome handles GET /. It is the unauthenticated landing response used by
// load balancers and humans poking at the base URL.
func (s *Server) GetHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "wayfarer-api",
		"status":  "ok",
	})
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

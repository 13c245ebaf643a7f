package api

import (
	"net/http"

	"anchor/internal/metrics"
)

// handleAvailability returns booking availability for the upcoming window.
// GET /api/availability
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data := s.generator.Upcoming(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

package api

import (
	"net/http"
	"strings"

	"anchor/internal/metrics"
	"anchor/internal/promotion"
)

// promotionResponse wraps a promotion for the website. A "none" status is a
// normal state, not an error: the site renders a "check back soon" page.
type promotionResponse struct {
	Status    string               `json:"status"`
	Promotion *promotion.Promotion `json:"promotion,omitempty"`
}

// handlePromotions returns all validated catalog entries.
// GET /api/promotions
func (s *HTTPServer) handlePromotions(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("promotions")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"promotions": s.resolver.All(),
	})
}

// handlePromotionsSub routes /api/promotions/{current|next|id}.
func (s *HTTPServer) handlePromotionsSub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/promotions/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	switch rest {
	case "current":
		s.handleCurrentPromotion(w, r)
	case "next":
		s.handleNextPromotion(w, r)
	case "":
		writeError(w, http.StatusBadRequest, "promotion id is required")
	default:
		s.handlePromotionByID(w, r, rest)
	}
}

// handleCurrentPromotion returns the promotion live right now.
// GET /api/promotions/current
func (s *HTTPServer) handleCurrentPromotion(w http.ResponseWriter, _ *http.Request) {
	metrics.IncHTTP("promotion_current")

	current := s.resolver.Current()
	if current == nil {
		writeJSON(w, http.StatusOK, promotionResponse{Status: "none"})
		return
	}
	writeJSON(w, http.StatusOK, promotionResponse{Status: "active", Promotion: current})
}

// handleNextPromotion returns the next scheduled promotion.
// GET /api/promotions/next
func (s *HTTPServer) handleNextPromotion(w http.ResponseWriter, _ *http.Request) {
	metrics.IncHTTP("promotion_next")

	next := s.resolver.Next()
	if next == nil {
		writeJSON(w, http.StatusOK, promotionResponse{Status: "none"})
		return
	}
	writeJSON(w, http.StatusOK, promotionResponse{Status: "upcoming", Promotion: next})
}

// handlePromotionByID looks a promotion up for preview mode.
// GET /api/promotions/{id}
func (s *HTTPServer) handlePromotionByID(w http.ResponseWriter, _ *http.Request, id string) {
	metrics.IncHTTP("promotion_by_id")

	promo := s.resolver.ByID(id)
	if promo == nil {
		writeError(w, http.StatusNotFound, "promotion not found")
		return
	}
	writeJSON(w, http.StatusOK, promotionResponse{Status: "found", Promotion: promo})
}

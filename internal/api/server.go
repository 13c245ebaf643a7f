package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"anchor/internal/availability"
	"anchor/internal/promotion"
)

// HTTPServer exposes the availability and promotions API to the website.
type HTTPServer struct {
	server    *http.Server
	resolver  *promotion.Resolver
	generator *availability.Generator
	log       zerolog.Logger
	apiKey    string
	limiter   *rate.Limiter
}

// Options configures the HTTP server.
type Options struct {
	Port           int
	APIKey         string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewHTTPServer builds the server and its routes.
func NewHTTPServer(opts Options, resolver *promotion.Resolver, generator *availability.Generator, logger zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		resolver:  resolver,
		generator: generator,
		log:       logger,
		apiKey:    opts.APIKey,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/availability", s.protect(s.handleAvailability))
	mux.HandleFunc("/api/promotions", s.protect(s.handlePromotions))
	mux.HandleFunc("/api/promotions/", s.protect(s.handlePromotionsSub))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the underlying handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until the context is cancelled.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// protect wraps a handler with rate limiting, API-key auth and request
// logging.
func (s *HTTPServer) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}

		requestID := uuid.New().String()
		started := time.Now()
		next(w, r)
		s.log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("request handled")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

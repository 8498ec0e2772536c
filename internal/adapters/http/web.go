package web

import (
	"net/http"
	"time"

	"shuttle/internal/adapters/http/middleware"
	"shuttle/internal/adapters/http/perf"
	gameScheduleStore "shuttle/internal/adapters/storage/gameschedule"
	gameSessionStore "shuttle/internal/adapters/storage/gamesession"
	semesterStore "shuttle/internal/adapters/storage/semester"
	"shuttle/internal/config"
)

// Stores holds all storage dependencies.
type Stores struct {
	SemesterStore semesterStore.Store
	ScheduleStore gameScheduleStore.Store
	SessionStore  gameSessionStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// timeNow is a variable for testability.
var timeNow = time.Now

// NewMux wires the JSON API. The returned limiter is shared with the caller
// so idle visitors can be swept periodically.
func NewMux(s *Stores, collector *perf.Collector, cfg config.Config) (http.Handler, *middleware.RateLimiter) {
	stores = s
	perfCollector = collector

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// Outermost first: Timing -> RateLimit -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(cfg.CSRFKey, cfg.IsProduction(), cfg.TrustedOrigins),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, cfg.SlowRequest),
	), limiter
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/api/semesters", handleSemesters)
	mux.HandleFunc("/api/schedules", handleSchedules)
	mux.HandleFunc("/api/schedules/generate", handleGenerateSessions)
	mux.HandleFunc("/api/sessions", handleSessions)
	mux.HandleFunc("/api/sessions/preview", handlePreviewSessions)
	mux.HandleFunc("/api/booking-open", handleBookingOpen)
	mux.HandleFunc("/api/perf", handlePerf)
}

package middleware

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"shuttle/internal/adapters/http/perf"
)

// DefaultSlowRequest is used when Timing is given a non-positive threshold.
const DefaultSlowRequest = 200 * time.Millisecond

var requestSeq atomic.Uint64

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Timing logs each request's duration and records it in collector when one is
// given. Requests at or above slow log at WARN, the rest at DEBUG. The
// liveness probe is not timed.
func Timing(collector *perf.Collector, slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequest
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id := requestSeq.Add(1)
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				elapsed := time.Since(start)
				level := slog.LevelDebug
				msg := "request"
				if elapsed >= slow {
					level, msg = slog.LevelWarn, "slow_request"
				}
				slog.Log(r.Context(), level, msg,
					"request_id", id,
					"method", r.Method,
					"path", r.URL.Path,
					"status", sr.status,
					"duration_ms", float64(elapsed.Microseconds())/1000,
				)
				collector.Record(perf.Entry{
					Kind:       perf.KindRequest,
					Path:       r.Method + " " + r.URL.Path,
					StatusCode: sr.status,
					DurationMs: float64(elapsed.Microseconds()) / 1000,
					Timestamp:  start,
				})
			}()

			next.ServeHTTP(sr, r)
		})
	}
}

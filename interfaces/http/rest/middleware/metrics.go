package middleware

import (
	"net/http"
	"strconv"
	"time"

	"postcards/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics records request counts and latency per route
func Metrics(metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// Route pattern only resolves after chi has matched the request
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			dimensions := map[string]string{
				"Route":  route,
				"Method": r.Method,
				"Status": strconv.Itoa(ww.Status()),
			}
			metrics.IncrementCounter(r.Context(), "RequestCount", dimensions)
			metrics.RecordDuration(r.Context(), "RequestLatency", time.Since(start), dimensions)
		})
	}
}

// Trace wraps each request in a trace segment
func Trace(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			defer seg.Close(nil)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/launchpad/bookstore/internal/observability"
)

// timingWriter appends the Server-Timing entry just before the status
// line goes out; headers cannot be added once the response is written.
type timingWriter struct {
	middleware.WrapResponseWriter
	start    time.Time
	appended bool
}

func (tw *timingWriter) WriteHeader(status int) {
	if !tw.appended {
		tw.appended = true
		dur := float64(time.Since(tw.start).Microseconds()) / 1000.0
		observability.AppendServerTiming(tw, "app", dur, "total")
	}
	tw.WrapResponseWriter.WriteHeader(status)
}

// ServerTiming measures total request time, writes app;dur=... to
// Server-Timing and feeds Metrics.ObserveHTTP.
func ServerTiming(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &timingWriter{
				WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor),
				start:              start,
			}
			next.ServeHTTP(ww, r)
			m.ObserveHTTP(r.Method, r.URL.Path, ww.Status(), float64(time.Since(start).Microseconds())/1000.0)
		})
	}
}

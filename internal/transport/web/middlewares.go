package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/metrics"
)

const (
	guestHeader   = "X-Guest-ID"
	requestHeader = "X-Request-ID"
)

func (s *Server) loggerMiddleware() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			var traceID string

			if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
				traceID = sc.TraceID().String()
			}

			if traceID == "" {
				traceID = r.Header.Get(requestHeader)
			}

			if traceID == "" {
				traceID = uuid.NewString()
			}

			ww.Header().Set(requestHeader, traceID)

			next.ServeHTTP(ww, r)

			latency := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(latency.Seconds())
			s.l.Access(r.Method, r.URL.Path, r.Proto, r.Header.Get("User-Agent"), traceID, status, latency)
		})
	}
}

func (s *Server) recoverMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					err, ok := re.(error)
					if !ok {
						err = fmt.Errorf("%v: %w", re, ErrPanic)
					}
					s.l.LogErrorf("type: panic, error: %v", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// guestMiddleware binds the guest session from the X-Guest-ID header.
func (s *Server) guestMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guestID := r.Header.Get(guestHeader)
			if guestID == "" {
				s.writeError(w, booking.ErrGuestRequired)

				return
			}

			next.ServeHTTP(w, r.WithContext(booking.NewContextWithGuestID(r.Context(), guestID)))
		})
	}
}

func (s *Server) corsMiddleware() func(next http.Handler) http.Handler {
	//nolint:exhaustruct
	return cors.Handler(cors.Options{
		AllowedOrigins: s.conf.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", guestHeader, requestHeader},
		ExposedHeaders: []string{requestHeader, "Content-Disposition"},
		MaxAge:         300, //nolint:gomnd
	})
}

func (s *Server) rateLimitMiddleware() func(next http.Handler) http.Handler {
	if s.conf.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		s.conf.RateLimitRequests,
		s.conf.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}

package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"donormatch/internal/utils"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyRequestID contextKey = "request_id"

	headerRequestID = "X-Request-ID"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestID reuses an incoming X-Request-ID or generates one, echoes it on
// the response and stores it in the request context.
func (s *Service) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerRequestID))
		if id == "" || len(id) > 64 {
			id = utils.RequestID()
		}

		w.Header().Set(headerRequestID, id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
			"request_id":  requestIDFromContext(r.Context()),
		})

		if rw.statusCode >= http.StatusInternalServerError {
			entry.Error("http request")
			return
		}
		entry.Info("http request")
	})
}

func (s *Service) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := s.routeLabel(r.URL.Path)
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		s.metrics.latency.WithLabelValues(r.Method, route).Observe(time.Since(started).Seconds())
	})
}

// CORS lets the browser client, served from another origin, call the API.
// Preflight requests are answered here and never reach the router.
func (s *Service) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if allowed, wildcard := s.originAllowed(origin); allowed {
				h := w.Header()
				if wildcard {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, "+headerRequestID)
				h.Set("Access-Control-Expose-Headers", headerRequestID)
				h.Set("Access-Control-Max-Age", "600")
			}
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// StripTrailingSlash redirects /api/victims/ to /api/victims. 308 keeps the
// method and body so form posts survive the redirect.
func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			// Collapse leading slashes too: "//host" in Location is another site.
			newURL := *r.URL
			newURL.Path = "/" + strings.Trim(path, "/")
			newURL.RawPath = ""

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusPermanentRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) originAllowed(origin string) (allowed, wildcard bool) {
	for _, o := range s.config.CORSOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			return true, true
		}
		if strings.EqualFold(strings.TrimRight(o, "/"), origin) {
			return true, false
		}
	}
	return false, false
}

// routeLabel keeps metric cardinality bounded to registered routes.
func (s *Service) routeLabel(path string) string {
	if s.routes[path] {
		return path
	}
	return "unmatched"
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

package server

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cjunker/bb-bounce/internal/leaderboard"
)

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logging records one line per request.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// recovery converts handler panics into a 500 without leaking the panic
// value to the client. In development mode the detail is echoed back.
func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
				if s.cfg.Server.Development {
					writeJSON(w, http.StatusInternalServerError, map[string]any{
						"error":  "internal error",
						"kind":   string(leaderboard.KindInternal),
						"detail": rec,
					})
					return
				}
				s.writeError(w, leaderboard.E(leaderboard.KindInternal, "internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// secureHeaders sets the response headers the frontend relies on.
func (s *Server) secureHeaders(next http.Handler) http.Handler {
	csp := "default-src 'self'; style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; img-src 'self' data: https:; connect-src 'self'"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// cors answers preflight requests and stamps the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller's network identity. A configured proxy
// header wins; otherwise the connection's remote address is used.
func (s *Server) clientIP(r *http.Request) string {
	if header := s.cfg.Server.ClientIPHeader; header != "" {
		if v := r.Header.Get(header); v != "" {
			// X-Forwarded-For may carry a chain; the client is first.
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			return strings.TrimSpace(v)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

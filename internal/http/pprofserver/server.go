// Package pprofserver exposes runtime profiles on a separate listener.
package pprofserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-rider-platform/internal/config"
)

const realm = "pprof"

// New returns the profiling server, or nil when profiling is disabled.
func New(cfg config.PprofConfig) *http.Server {
	if !cfg.Enabled || strings.TrimSpace(cfg.Addr) == "" {
		return nil
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Handler mounts chi's profiler under /debug. Loopback callers pass freely,
// remote callers need the configured basic-auth pair.
func Handler(cfg config.PprofConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(cfg))
	r.Mount("/debug", middleware.Profiler())
	return r
}

func guard(cfg config.PprofConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		withAuth := denyAll(next)
		if cfg.User != "" && cfg.Pass != "" {
			withAuth = middleware.BasicAuth(realm, map[string]string{cfg.User: cfg.Pass})(next)
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			withAuth.ServeHTTP(w, r)
		})
	}
}

// denyAll answers remote callers when no credentials are configured.
func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func isLoopback(remoteAddr string) bool {
	host := strings.TrimSpace(remoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// internal/httpserver/server.go
//
// HTTP server wiring for the Hi-Q backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/configurations".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/select,
//     /game/resolve, /game/reset, /game/configure.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Live sessions stay in the store; only finished-game results reach the DB.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/robalobadob/hiq/apps/go-server/internal/config"
	"github.com/robalobadob/hiq/apps/go-server/internal/game"
	"github.com/robalobadob/hiq/apps/go-server/internal/store"
)

// Server bundles router, in-memory session store, DB handle and config.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                  // add X-Request-ID
	s.r.Use(chimw.RealIP)                     // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                  // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                  // default JSON responses
	s.r.Use(cors.Handler(cors.Options{        // credentials-friendly CORS
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           60 * 15,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hiq-go","endpoints":["/health","/configurations","POST /game/new","POST /game/select","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Get("/configurations", s.handleConfigurations)

	// Game endpoints: optional auth (guests can play)
	s.r.With(s.withOptionalAuth()).Route("/game", s.mountGame)

	// Daily Challenge: optional auth
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// configurationInfo lists one preset for /configurations.
type configurationInfo struct {
	Name         game.Configuration `json:"name"`
	StartingPegs int                `json:"startingPegs"`
}

func (s *Server) handleConfigurations(w http.ResponseWriter, r *http.Request) {
	out := make([]configurationInfo, 0, len(game.Configurations))
	for _, c := range game.Configurations {
		out = append(out, configurationInfo{Name: c, StartingPegs: game.StartingPegs(c)})
	}
	writeJSON(w, http.StatusOK, out)
}

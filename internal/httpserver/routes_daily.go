// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/select      → tap a cell in today's game
//   - POST /daily/resolve     → pick a destination in today's game
//   - GET  /daily/leaderboard → top 20 results for today (or a given date)
//
// Everyone plays the same configuration on a given date (HMAC of date + salt).
// Each player gets one attempt per day: no reset, no reconfigure. The result
// is persisted the first time the game reaches a finished state, and the
// session is dropped then. Sessions left over from earlier days are pruned on
// /daily/new.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiq/apps/go-server/internal/daily"
	"github.com/robalobadob/hiq/apps/go-server/internal/game"
	"github.com/robalobadob/hiq/apps/go-server/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	results  *daily.Store
	games    store.Store              // daily sessions, kept apart from free play
	salt     string
	sessions map[string]*dailySession // active sessions keyed by playerID|date
	mu       sync.Mutex               // guards sessions
	now      func() time.Time
}

// dailySession links a player's day to a game session.
type dailySession struct {
	GameID        string
	PlayerID      string
	Date          string
	Configuration game.Configuration
	Start         time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		results:  daily.NewStore(s.db),
		games:    store.NewMemoryStore(),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
		now:      time.Now,
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/select", dd.handleCell(false))
		r.Post("/resolve", dd.handleCell(true))
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and configuration.
func (d *dailyServer) today() (string, game.Configuration) {
	now := d.now().UTC()
	return daily.DateKey(now), daily.Configuration(now, d.salt)
}

// recorder persists the daily result on the first finished state.
func (d *dailyServer) recorder(sess *dailySession) game.Observer {
	recorded := false
	return func(g *game.Session) {
		if recorded || !g.Finished() {
			return
		}
		recorded = true
		d.forget(sess)
		res := daily.Result{
			UserID:        sess.PlayerID,
			Date:          sess.Date,
			Configuration: string(sess.Configuration),
			PegsRemaining: g.RemainingPegCount(),
			Moves:         g.Moves(),
			ElapsedMs:     int(d.now().Sub(sess.Start).Milliseconds()),
		}
		if err := d.results.InsertResult(context.Background(), res); err != nil {
			log.Warn().Err(err).Str("player", sess.PlayerID).Msg("insert daily result")
			return
		}
		log.Info().Str("player", sess.PlayerID).Str("date", sess.Date).
			Int("pegs", res.PegsRemaining).Msg("daily finished")
	}
}

// forget drops sess from the session map and its game from the store.
func (d *dailyServer) forget(sess *dailySession) {
	d.mu.Lock()
	if cur, ok := d.sessions[sess.key()]; ok && cur == sess {
		delete(d.sessions, sess.key())
	}
	d.mu.Unlock()
	_ = d.games.Delete(context.Background(), sess.GameID)
}

// pruneLocked drops sessions that belong to a date other than today.
// Callers hold d.mu.
func (d *dailyServer) pruneLocked(today string) {
	for k, sess := range d.sessions {
		if sess.Date == today {
			continue
		}
		delete(d.sessions, k)
		_ = d.games.Delete(context.Background(), sess.GameID)
	}
}

func (s *dailySession) key() string { return s.PlayerID + "|" + s.Date }

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID        string             `json:"gameId"`
	Date          string             `json:"date"`
	Configuration game.Configuration `json:"configuration"`
	Played        bool               `json:"played"`
	State         *stateView         `json:"state,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a result for today → Played=true.
// - Otherwise create/reuse an in-memory session and return its state.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid := d.srv.ownerOf(w, r).id()
	date, c := d.today()

	if played, err := d.results.AlreadyPlayed(r.Context(), pid, date); err == nil && played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Configuration: c, Played: true})
		return
	}

	key := pid + "|" + date
	d.mu.Lock()
	d.pruneLocked(date)
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{PlayerID: pid, Date: date, Configuration: c, Start: d.now()}
		g, err := game.New(c, d.recorder(sess))
		if err != nil {
			d.mu.Unlock()
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
		sess.GameID = g.ID
		if err := d.games.Save(r.Context(), g); err != nil {
			d.mu.Unlock()
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	var v stateView
	if err := d.games.Do(r.Context(), sess.GameID, func(g *game.Session) error {
		v = viewOf(g)
		return nil
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.GameID, Date: date, Configuration: c, State: &v})
}

// -----------------------------------------------------------------------------
// /daily/select, /daily/resolve

// handleCell applies a tap to the caller's daily session for today.
func (d *dailyServer) handleCell(resolve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid := d.srv.ownerOf(w, r).id()
		var req cellReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
		date, _ := d.today()

		d.mu.Lock()
		sess, ok := d.sessions[pid+"|"+date]
		d.mu.Unlock()
		if !ok || sess.GameID != req.GameID {
			writeError(w, http.StatusConflict, "no_session")
			return
		}

		res, code := playCell(r.Context(), d.games, req, resolve)
		writeJSON(w, code, res)
	}
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.results.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

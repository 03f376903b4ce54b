// internal/httpserver/routes_game.go
//
// Free-play game endpoints:
//   - POST /game/new        → start a session in a configuration
//   - GET  /game/{id}       → current state
//   - POST /game/select     → tap a cell (select a peg or pick a destination)
//   - POST /game/resolve    → pick a destination for an ambiguous selection
//   - POST /game/reset      → start the current configuration over
//   - POST /game/configure  → switch configuration
//
// Only the player who started a game (user, or anonymous cookie until the
// game is claimed at signup/login) may read or drive it; everyone else gets 404.
// Each session carries an observer that logs state changes and, once the game
// is finished, records the result (and the owning user's stats) and evicts
// the session from the store.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiq/apps/go-server/internal/game"
	"github.com/robalobadob/hiq/apps/go-server/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/new", s.handleNewGame)
	r.Get("/{id}", s.handleGetGame)
	r.Post("/select", s.handleCell(false))
	r.Post("/resolve", s.handleCell(true))
	r.Post("/reset", s.handleReset)
	r.Post("/configure", s.handleConfigure)
}

// stateView is the JSON shape of a session.
type stateView struct {
	GameID        string             `json:"gameId"`
	Configuration game.Configuration `json:"configuration"`
	Rows          [][]bool           `json:"rows"`
	StartingPegs  int                `json:"startingPegs"`
	RemainingPegs int                `json:"remainingPegs"`
	Moves         int                `json:"moves"`
	Selection     *game.Position     `json:"selection,omitempty"`
	Ambiguous     bool               `json:"ambiguous"`
	Targets       []game.Position    `json:"targets"`
	State         string             `json:"state"` // playing | won | perfect | lost
	Won           bool               `json:"won"`
	WonIdeal      bool               `json:"wonIdeal"`
	Lost          bool               `json:"lost"`
	Status        string             `json:"status"`
}

func viewOf(g *game.Session) stateView {
	v := stateView{
		GameID:        g.ID,
		Configuration: g.Configuration(),
		Rows:          g.Cells(),
		StartingPegs:  g.StartingPegCount(),
		RemainingPegs: g.RemainingPegCount(),
		Moves:         g.Moves(),
		Ambiguous:     g.Ambiguous(),
		Targets:       g.PossibleJumpTargets(),
		State:         g.State(),
		Won:           g.IsWon(),
		WonIdeal:      g.IsWonIdeal(),
		Lost:          g.IsLost(),
		Status:        g.StatusText(),
	}
	if p, ok := g.Selection(); ok {
		v.Selection = &p
	}
	return v
}

// owner identifies who a game belongs to: a user or an anonymous cookie.
type owner struct {
	UserID string
	AnonID string
}

// ownerOf returns the authenticated user, or the anonymous cookie ID.
func (s *Server) ownerOf(w http.ResponseWriter, r *http.Request) owner {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return owner{UserID: me.ID}
	}
	return owner{AnonID: s.ensureAnonID(w, r)}
}

// id returns the identifier used for per-player records.
func (o owner) id() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

// checkOwner returns store.ErrNotFound unless o started (or has claimed) gameID.
func (s *Server) checkOwner(ctx context.Context, o owner, gameID string) error {
	var userID, anonID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT user_id, anonymous_id FROM games WHERE id=?`, gameID).Scan(&userID, &anonID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if o.UserID != "" && userID.String == o.UserID {
		return nil
	}
	if o.AnonID != "" && anonID.String == o.AnonID {
		return nil
	}
	return store.ErrNotFound
}

// doOwned runs fn on the caller's session id.
func (s *Server) doOwned(w http.ResponseWriter, r *http.Request, id string, fn func(g *game.Session) error) error {
	if err := s.checkOwner(r.Context(), s.ownerOf(w, r), id); err != nil {
		return err
	}
	return s.store.Do(r.Context(), id, fn)
}

// recorder returns the observer attached to free-play sessions.
// It runs under the store's session lock.
func (s *Server) recorder() game.Observer {
	recorded := false
	return func(g *game.Session) {
		log.Debug().Str("gameId", g.ID).
			Str("configuration", string(g.Configuration())).
			Int("pegs", g.RemainingPegCount()).
			Str("status", g.StatusText()).
			Msg("game changed")

		if recorded || !g.Finished() {
			return
		}
		recorded = true
		if err := s.recordFinish(g); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("record finished game")
		}
		_ = s.store.Delete(context.Background(), g.ID)
		log.Debug().Str("gameId", g.ID).Int("live", s.store.Len()).Msg("session evicted")
	}
}

// recordFinish writes the game's outcome and bumps the stats of whoever owns
// the row now (a guest game claimed at signup counts for the new account).
func (s *Server) recordFinish(g *game.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID sql.NullString
	if err := tx.QueryRow(`SELECT user_id FROM games WHERE id=?`, g.ID).Scan(&userID); err != nil {
		return err
	}
	state := g.State()
	if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=?, moves=?, pegs_remaining=?, configuration=? WHERE id=?`,
		state, time.Now().UTC().Format(time.RFC3339), g.Moves(), g.RemainingPegCount(), string(g.Configuration()), g.ID); err != nil {
		return err
	}
	if userID.Valid && userID.String != "" {
		if err := s.bumpStats(tx, userID.String, state); err != nil {
			return err
		}
	}
	log.Info().Str("gameId", g.ID).Str("state", state).Int("moves", g.Moves()).Msg("game finished")
	return tx.Commit()
}

// bumpStats increments games played; updates wins, perfect wins and streak (within tx).
func (s *Server) bumpStats(tx *sql.Tx, userID, state string) error {
	var gp, wins, perfect, streak int
	row := tx.QueryRow(`SELECT games_played, wins, perfect_wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &perfect, &streak); err != nil {
		return err
	}
	gp++
	switch state {
	case "perfect":
		perfect++
		fallthrough
	case "won":
		wins++
		streak++
	default:
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, perfect_wins=?, streak=? WHERE id=?`,
		gp, wins, perfect, streak, userID)
	return err
}

// ------------------------------ /game/new ----------------------------------

type newGameReq struct {
	Configuration string `json:"configuration"` // optional, defaults to DEFAULT_CONFIGURATION
}
type newGameRes struct {
	GameID string    `json:"gameId"`
	State  stateView `json:"state"`
}

// handleNewGame creates a session and a DB row for its eventual result.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	name := req.Configuration
	if name == "" {
		name = s.cfg.DefaultConfiguration
	}
	c, err := game.ParseConfiguration(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_configuration")
		return
	}

	o := s.ownerOf(w, r)
	g, err := game.New(c, s.recorder())
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_configuration")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var userID, anonID any
	if o.UserID != "" {
		userID = o.UserID
	} else {
		anonID = o.AnonID
	}
	if _, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, user_id, anonymous_id, configuration, started_at, status, pegs_remaining)
		 VALUES (?,?,?,?,?,?,?)`, g.ID, userID, anonID, string(c), now, "playing", g.StartingPegCount()); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("insert game row")
		_ = s.store.Delete(r.Context(), g.ID)
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	log.Info().Str("gameId", g.ID).Str("configuration", string(c)).Msg("game started")
	var v stateView
	_ = s.store.Do(r.Context(), g.ID, func(g *game.Session) error {
		v = viewOf(g)
		return nil
	})
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, State: v})
}

// ------------------------------ /game/{id} ---------------------------------

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var v stateView
	err := s.doOwned(w, r, chi.URLParam(r, "id"), func(g *game.Session) error {
		v = viewOf(g)
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// --------------------------- /game/select|resolve --------------------------

type cellReq struct {
	GameID string `json:"gameId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}
type cellRes struct {
	Outcome game.Outcome `json:"outcome"`
	State   stateView    `json:"state"`
	Error   string       `json:"error,omitempty"`
}

// handleCell applies a tap (or an explicit destination when resolve is set).
func (s *Server) handleCell(resolve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cellReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
		if err := s.checkOwner(r.Context(), s.ownerOf(w, r), req.GameID); err != nil {
			writeStoreError(w, err)
			return
		}
		res, code := playCell(r.Context(), s.store, req, resolve)
		writeJSON(w, code, res)
	}
}

// playCell runs one tap against a stored session and maps rule errors to
// HTTP codes. Shared by free play and the daily challenge.
func playCell(ctx context.Context, st store.Store, req cellReq, resolve bool) (cellRes, int) {
	var res cellRes
	err := st.Do(ctx, req.GameID, func(g *game.Session) error {
		var err error
		if resolve {
			res.Outcome, err = g.ResolveDestination(req.Row, req.Col)
		} else {
			res.Outcome, err = g.SelectPeg(req.Row, req.Col)
		}
		res.State = viewOf(g)
		return err
	})
	switch {
	case err == nil:
		return res, http.StatusOK
	case errors.Is(err, store.ErrNotFound):
		return cellRes{Error: "not_found"}, http.StatusNotFound
	case errors.Is(err, game.ErrNoSelection):
		res.Error = "no_selection"
		return res, http.StatusConflict
	case errors.Is(err, game.ErrIllegalJump):
		res.Error = "illegal_jump"
		return res, http.StatusConflict
	}
	log.Error().Err(err).Str("gameId", req.GameID).Msg("play cell")
	return cellRes{Error: "server_error"}, http.StatusInternalServerError
}

// ------------------------- /game/reset|configure ---------------------------

type configureReq struct {
	GameID        string `json:"gameId"`
	Configuration string `json:"configuration"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req configureReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var v stateView
	err := s.doOwned(w, r, req.GameID, func(g *game.Session) error {
		g.Reset()
		v = viewOf(g)
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req configureReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var v stateView
	err := s.doOwned(w, r, req.GameID, func(g *game.Session) error {
		if err := g.Configure(req.Configuration); err != nil {
			return err
		}
		v = viewOf(g)
		return nil
	})
	if errors.Is(err, game.ErrUnknownConfiguration) {
		writeError(w, http.StatusBadRequest, "unknown_configuration")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// writeStoreError maps store lookups to 404, anything else to 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	log.Error().Err(err).Msg("store")
	writeError(w, http.StatusInternalServerError, "server_error")
}

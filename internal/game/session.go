// internal/game/session.go
//
// Game session: one board, one jump engine, the active configuration and the
// observers that want to hear about changes.
//
// Every mutating call (Configure, Reset, SelectPeg, ResolveDestination)
// notifies observers exactly once, synchronously, after the call's state has
// settled. A failed Configure leaves the session untouched and notifies no one.
//
// A Session is not safe for concurrent use; callers sharing one must hold a
// single lock around each call (see the store package).

package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/hiq/apps/go-server/internal/board"
)

// Status messages shown once the game is over.
const (
	MessageLost       = "No more jumps!"
	MessageWon        = "I'm a winner"
	MessageWonPerfect = "I'm a perfect winner!"
)

// Observer is called after each state change.
type Observer func(s *Session)

// Session is a single game of Hi-Q.
type Session struct {
	ID string

	board     *board.Board
	engine    *Engine
	config    Configuration
	starting  int
	moves     int
	status    string
	observers []Observer
}

// New creates a session in configuration c (DefaultConfiguration if empty).
// Observers are registered before the initial configuration is applied, so
// they see the starting state too.
func New(c Configuration, observers ...Observer) (*Session, error) {
	if c == "" {
		c = DefaultConfiguration
	}
	if _, ok := presets[c]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfiguration, c)
	}
	b := board.New()
	s := &Session{
		ID:        uuid.NewString(),
		board:     b,
		engine:    NewEngine(b),
		observers: observers,
	}
	s.apply(c)
	return s, nil
}

// OnChange registers another observer.
func (s *Session) OnChange(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Configure switches to the named preset.
func (s *Session) Configure(name string) error {
	c, err := ParseConfiguration(name)
	if err != nil {
		return err
	}
	s.apply(c)
	return nil
}

// Reset starts the current configuration over.
func (s *Session) Reset() { s.apply(s.config) }

func (s *Session) apply(c Configuration) {
	p := presets[c]
	s.board.Clear()
	p.build(s.board)
	s.config = c
	s.starting = p.starting
	s.moves = 0
	s.engine.Reset()
	s.status = fmt.Sprintf("Solitaire Checkers in %s configuration", c)
	s.notify()
}

// SelectPeg is the single entry point for a tap on (row, col).
// On an occupied cell it selects the peg (jumping at once when only one
// jump exists); on an empty cell it resolves the pending selection.
func (s *Session) SelectPeg(row, col int) (Outcome, error) {
	if !s.board.Valid(row, col) {
		s.status = fmt.Sprintf("%d, %d is off the board", row+1, col+1)
		s.notify()
		return OutcomeIgnored, nil
	}
	if !s.board.IsOccupied(row, col) {
		return s.ResolveDestination(row, col)
	}

	out, err := s.engine.SelectPeg(row, col)
	switch out {
	case OutcomeAmbiguous:
		s.status = fmt.Sprintf("peg %d, %d has multiple jumps", row+1, col+1)
	case OutcomeSelected:
		s.status = fmt.Sprintf("peg %d, %d cannot jump", row+1, col+1)
	case OutcomeJumped:
		s.moves++
		s.status = fmt.Sprintf("peg %d, %d jumped", row+1, col+1)
	}
	s.notify()
	return out, err
}

// ResolveDestination jumps the selected peg towards (row, col).
// Without a selection it fails with ErrNoSelection; if the implied jump is
// not legal it fails with ErrIllegalJump and the board is unchanged.
func (s *Session) ResolveDestination(row, col int) (Outcome, error) {
	sel, _ := s.engine.Selection()
	out, err := s.engine.ResolveDestination(row, col)
	switch {
	case errors.Is(err, ErrNoSelection):
		s.status = "select a peg first"
	case err != nil:
		s.status = fmt.Sprintf("peg %d, %d cannot jump to %d, %d", sel.Row+1, sel.Col+1, row+1, col+1)
	default:
		s.moves++
		to := s.engine.Landed()
		s.status = fmt.Sprintf("you chose %d, %d", to.Row+1, to.Col+1)
	}
	s.notify()
	return out, err
}

func (s *Session) notify() {
	for _, o := range s.observers {
		o(s)
	}
}

// Configuration returns the active preset.
func (s *Session) Configuration() Configuration { return s.config }

// Shape returns the row count and per-row widths.
func (s *Session) Shape() (int, []int) { return s.board.Rows(), s.board.Widths() }

// IsOccupied reports whether a peg sits at (row, col).
func (s *Session) IsOccupied(row, col int) bool { return s.board.IsOccupied(row, col) }

// Cells returns a copy of the occupancy grid.
func (s *Session) Cells() [][]bool { return s.board.Snapshot() }

// StartingPegCount is the preset's declared peg count.
func (s *Session) StartingPegCount() int { return s.starting }

// RemainingPegCount is the number of pegs on the board.
func (s *Session) RemainingPegCount() int { return s.board.Count() }

// Moves is the number of jumps made since the last Configure/Reset.
func (s *Session) Moves() int { return s.moves }

// PossibleJumpTargets lists destinations for the selected peg.
func (s *Session) PossibleJumpTargets() []Position { return s.engine.Targets() }

// Selection returns the selected peg, if any.
func (s *Session) Selection() (Position, bool) { return s.engine.Selection() }

// Ambiguous reports whether a destination choice is pending.
func (s *Session) Ambiguous() bool { return s.engine.Ambiguous() }

// IsWon: one peg left, not in the center.
func (s *Session) IsWon() bool {
	return s.board.Count() == 1 && !s.board.IsOccupied(board.CenterRow, board.CenterCol)
}

// IsWonIdeal: one peg left, in the center.
func (s *Session) IsWonIdeal() bool {
	return s.board.Count() == 1 && s.board.IsOccupied(board.CenterRow, board.CenterCol)
}

// IsLost: more than one peg left and none of them can jump.
func (s *Session) IsLost() bool {
	if s.engine.AnyPegCanJump() {
		return false
	}
	return s.board.Count() > 1
}

// Finished reports whether the game has reached a terminal state.
func (s *Session) Finished() bool { return s.IsWon() || s.IsWonIdeal() || s.IsLost() }

// State is a coarse label: "playing", "won", "perfect" or "lost".
func (s *Session) State() string {
	switch {
	case s.IsWonIdeal():
		return "perfect"
	case s.IsWon():
		return "won"
	case s.IsLost():
		return "lost"
	}
	return "playing"
}

// StatusText describes the game: the end-of-game message once finished,
// otherwise the result of the last action.
func (s *Session) StatusText() string {
	switch {
	case s.IsWonIdeal():
		return MessageWonPerfect
	case s.IsWon():
		return MessageWon
	case s.IsLost():
		return MessageLost
	}
	return s.status
}

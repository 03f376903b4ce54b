// internal/game/engine.go
//
// Jump engine for the Hi-Q board.
// Responsibilities:
//   - Decide whether a peg can jump in a direction (geometry + occupancy).
//   - Execute jumps: move the peg two cells, remove the jumped peg.
//   - Drive the "select a peg, then pick a destination" interaction.
//
// Column transposition:
//   Narrow rows (width 3) sit over columns 2..4 of the wide band (width 7).
//   A vertical step from a wide row into a narrow row subtracts 2 from the
//   column, the reverse adds 2, and equal-width rows keep the column.
//
// PossibleJumps:
//   Four slots indexed by Direction holding the destination reachable from the
//   last selected peg. Only CanJump writes them; the counting helpers use a
//   side-effect-free check so a board-wide scan never leaves stale entries.

package game

import (
	"fmt"

	"github.com/robalobadob/hiq/apps/go-server/internal/board"
)

// delta is the distance, in cells, of a jump.
const delta = 2

type selection int

const (
	selectionNone selection = iota
	selectionPeg
	selectionAmbiguous
)

type jumpSlot struct {
	to Position
	ok bool
}

// Engine applies jump rules to a board it does not own.
type Engine struct {
	b        *board.Board
	possible [len(Directions)]jumpSlot
	sel      Position
	state    selection
	landed   Position // destination of the last resolved jump
}

// NewEngine returns an engine with no selection.
func NewEngine(b *board.Board) *Engine {
	return &Engine{b: b}
}

// transposeColumn maps col on fromRow to the matching column on toRow.
func (e *Engine) transposeColumn(fromRow, col, toRow int) int {
	wf, wt := e.b.Width(fromRow), e.b.Width(toRow)
	switch {
	case wf == wt:
		return col
	case wf > wt:
		return col - delta
	default:
		return col + delta
	}
}

// step returns the cell n steps from (row, col) in direction d.
func (e *Engine) step(row, col int, d Direction, n int) (int, int) {
	dr, dc := d.offset()
	r := row + dr*n
	if !d.vertical() {
		return r, col + dc*n
	}
	if !e.b.ValidRow(r) {
		return r, col
	}
	return r, e.transposeColumn(row, col, r)
}

// target answers where a peg at (row, col) would land jumping in d.
// It has no side effects.
func (e *Engine) target(row, col int, d Direction) (Position, bool) {
	r2, c2 := e.step(row, col, d, delta)
	if !e.b.Valid(r2, c2) || e.b.IsOccupied(r2, c2) {
		return Position{}, false
	}
	r1, c1 := e.step(row, col, d, 1)
	if !e.b.Valid(r1, c1) || !e.b.IsOccupied(r1, c1) {
		return Position{}, false
	}
	return Position{Row: r2, Col: c2}, true
}

// CanJump reports the destination of a jump from (row, col) in d and records
// the answer in the PossibleJumps slot for d.
func (e *Engine) CanJump(row, col int, d Direction) (Position, bool) {
	to, ok := e.target(row, col, d)
	e.possible[d] = jumpSlot{to: to, ok: ok}
	return to, ok
}

// CountJumps returns how many directions have a legal jump from (row, col).
func (e *Engine) CountJumps(row, col int) int {
	n := 0
	for _, d := range Directions {
		if _, ok := e.target(row, col, d); ok {
			n++
		}
	}
	return n
}

// HasAnyJump reports whether (row, col) can jump in at least one direction.
func (e *Engine) HasAnyJump(row, col int) bool { return e.CountJumps(row, col) > 0 }

// HasMultipleJumps reports whether (row, col) can jump in two or more directions.
func (e *Engine) HasMultipleJumps(row, col int) bool { return e.CountJumps(row, col) > 1 }

// AnyPegCanJump reports whether any peg on the board has a legal jump.
func (e *Engine) AnyPegCanJump() bool {
	for _, p := range e.b.Occupied() {
		if e.HasAnyJump(p.Row, p.Col) {
			return true
		}
	}
	return false
}

// ExecuteJump moves the peg at (row, col) over its neighbour in d.
// Returns false, leaving the board untouched, if there is no peg at (row, col)
// or the jump is not legal.
func (e *Engine) ExecuteJump(row, col int, d Direction) bool {
	if !e.b.IsOccupied(row, col) {
		return false
	}
	to, ok := e.target(row, col, d)
	if !ok {
		return false
	}
	r1, c1 := e.step(row, col, d, 1)
	e.b.SetOccupied(row, col, false)
	e.b.SetOccupied(r1, c1, false)
	e.b.SetOccupied(to.Row, to.Col, true)
	return true
}

// SelectPeg handles a tap on (row, col).
//
// An empty cell names the destination for the current selection (see
// ResolveDestination). An occupied cell becomes the selection and its
// PossibleJumps are recomputed; with two or more jumps the call stops at
// OutcomeAmbiguous and the board is left alone, with exactly one the jump
// is executed straight away.
func (e *Engine) SelectPeg(row, col int) (Outcome, error) {
	if !e.b.Valid(row, col) {
		return OutcomeIgnored, nil
	}
	if !e.b.IsOccupied(row, col) {
		return e.ResolveDestination(row, col)
	}

	e.sel = Position{Row: row, Col: col}
	e.state = selectionPeg
	e.clearPossible()

	n := 0
	for _, d := range Directions {
		if _, ok := e.CanJump(row, col, d); ok {
			n++
		}
	}
	switch {
	case n == 0:
		return OutcomeSelected, nil
	case n > 1:
		e.state = selectionAmbiguous
		return OutcomeAmbiguous, nil
	}

	e.sweep(row, col)
	e.clearPossible()
	e.state = selectionNone
	return OutcomeJumped, nil
}

// sweep executes every direction that is legal from (row, col), in the fixed
// order up, down, left, right. Once a jump fires the origin is empty, so the
// remaining directions fall through.
func (e *Engine) sweep(row, col int) int {
	n := 0
	for _, d := range sweepOrder {
		if e.ExecuteJump(row, col, d) {
			n++
		}
	}
	return n
}

// ResolveDestination jumps the selected peg towards (row, col).
// The direction comes from the destination's offset: same row means left or
// right, otherwise up or down. The jump must still be legal on the board.
func (e *Engine) ResolveDestination(row, col int) (Outcome, error) {
	if e.state == selectionNone {
		return OutcomeIgnored, ErrNoSelection
	}
	from := e.sel
	d := directionTowards(from, Position{Row: row, Col: col})
	to, _ := e.target(from.Row, from.Col, d)
	if !e.ExecuteJump(from.Row, from.Col, d) {
		return OutcomeIgnored, fmt.Errorf("%w: %s from %d, %d", ErrIllegalJump, d, from.Row+1, from.Col+1)
	}
	e.landed = to
	e.clearPossible()
	e.state = selectionNone
	return OutcomeJumped, nil
}

func directionTowards(from, to Position) Direction {
	if from.Row == to.Row {
		if to.Col < from.Col {
			return Left
		}
		return Right
	}
	if to.Row < from.Row {
		return Up
	}
	return Down
}

// Reset forgets the selection and every possible jump.
func (e *Engine) Reset() {
	e.clearPossible()
	e.sel = Position{}
	e.state = selectionNone
}

func (e *Engine) clearPossible() {
	for i := range e.possible {
		e.possible[i] = jumpSlot{}
	}
}

// Selection returns the remembered peg, if any.
func (e *Engine) Selection() (Position, bool) {
	if e.state == selectionNone {
		return Position{}, false
	}
	return e.sel, true
}

// Landed returns where the last ResolveDestination put the selected peg.
// The tapped cell only picks the direction, so it can differ.
func (e *Engine) Landed() Position { return e.landed }

// Ambiguous reports whether the selection is waiting for a destination.
func (e *Engine) Ambiguous() bool { return e.state == selectionAmbiguous }

// PossibleJump returns the recorded destination for d.
func (e *Engine) PossibleJump(d Direction) (Position, bool) {
	s := e.possible[d]
	return s.to, s.ok
}

// Targets lists the recorded destinations in slot order.
func (e *Engine) Targets() []Position {
	out := []Position{}
	for _, s := range e.possible {
		if s.ok {
			out = append(out, s.to)
		}
	}
	return out
}

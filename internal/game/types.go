// internal/game/types.go
//
// Core type definitions for the Hi-Q game engine.
// Defines:
//   - Direction: one of the four jump directions (also the PossibleJumps slot index).
//   - Outcome: tagged result of a single cell tap (ignored/selected/ambiguous/jumped).
//   - Configuration: the eight named starting layouts.
//   - Sentinel errors surfaced to callers.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/hiq/apps/go-server/internal/board"
)

// Position is re-exported so callers don't need the board package.
type Position = board.Position

// Direction is a jump direction. Its value is the PossibleJumps slot index.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four directions in slot order.
var Directions = [...]Direction{Up, Right, Down, Left}

// sweepOrder is the order in which an unambiguous selection is executed.
var sweepOrder = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// offset returns the unit (row, col) step for d.
func (d Direction) offset() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

func (d Direction) vertical() bool { return d == Up || d == Down }

// Outcome tags what a tap on a cell did.
//   - OutcomeIgnored:   nothing happened (off-board cell).
//   - OutcomeSelected:  a peg was selected but it has no legal jump.
//   - OutcomeAmbiguous: the selected peg has several jumps; a destination is needed.
//   - OutcomeJumped:    a jump was executed.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeSelected  Outcome = "selected"
	OutcomeAmbiguous Outcome = "ambiguous"
	OutcomeJumped    Outcome = "jumped"
)

// Configuration names a starting layout.
type Configuration string

const (
	Solitaire   Configuration = "Solitaire"
	Cross       Configuration = "Cross"
	Diamond     Configuration = "Diamond"
	DoubleArrow Configuration = "DoubleArrow"
	Arrow       Configuration = "Arrow"
	Fireplace   Configuration = "Fireplace"
	Plus        Configuration = "Plus"
	Pyramid     Configuration = "Pyramid"
)

// DefaultConfiguration is used by New when none is given.
const DefaultConfiguration = Solitaire

// Configurations lists every preset in menu order.
var Configurations = [...]Configuration{
	Solitaire, Cross, Diamond, DoubleArrow, Arrow, Fireplace, Plus, Pyramid,
}

var (
	ErrUnknownConfiguration = errors.New("unknown configuration")
	ErrNoSelection          = errors.New("no peg selected")
	ErrIllegalJump          = errors.New("illegal jump")
)

// ParseConfiguration resolves a preset name. Whitespace is ignored and the
// match is case-insensitive, so "double arrow" yields DoubleArrow.
func ParseConfiguration(name string) (Configuration, error) {
	key := strings.Join(strings.Fields(name), "")
	for _, c := range Configurations {
		if strings.EqualFold(string(c), key) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConfiguration, name)
}

// internal/game/presets.go
//
// Starting layouts. Each preset rebuilds the whole board and declares how many
// pegs it starts with; the declared count always matches the placement.

package game

import "github.com/robalobadob/hiq/apps/go-server/internal/board"

type preset struct {
	build    func(b *board.Board)
	starting int
}

var presets = map[Configuration]preset{
	Solitaire:   {build: buildSolitaire, starting: 32},
	Cross:       {build: buildCross, starting: 6},
	Diamond:     {build: buildDiamond, starting: 24},
	DoubleArrow: {build: buildDoubleArrow, starting: 21},
	Arrow:       {build: buildArrow, starting: 17},
	Fireplace:   {build: buildFireplace, starting: 11},
	Plus:        {build: buildPlus, starting: 9},
	Pyramid:     {build: buildPyramid, starting: 16},
}

// StartingPegs returns the declared peg count of c, or 0 if c is unknown.
func StartingPegs(c Configuration) int { return presets[c].starting }

func place(b *board.Board, v bool, cells ...[2]int) {
	for _, c := range cells {
		b.SetOccupied(c[0], c[1], v)
	}
}

func buildSolitaire(b *board.Board) {
	b.FillAll()
	b.SetOccupied(board.CenterRow, board.CenterCol, false)
}

func buildCross(b *board.Board) {
	b.Clear()
	place(b, true,
		[2]int{1, 1},
		[2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4},
		[2]int{3, 3},
		[2]int{4, 3},
	)
}

func buildDiamond(b *board.Board) {
	b.FillAll()
	place(b, false,
		[2]int{0, 0}, [2]int{0, 2},
		[2]int{2, 0}, [2]int{2, 6},
		[2]int{3, 3},
		[2]int{4, 0}, [2]int{4, 6},
		[2]int{6, 0}, [2]int{6, 2},
	)
}

func buildArrow(b *board.Board) {
	b.Clear()
	place(b, true,
		[2]int{0, 1},
		[2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2},
		[2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5},
		[2]int{3, 3},
		[2]int{4, 3},
		[2]int{5, 0}, [2]int{5, 1}, [2]int{5, 2},
		[2]int{6, 0}, [2]int{6, 1}, [2]int{6, 2},
	)
}

// DoubleArrow is Arrow with a second head on the lower band and a narrower tail.
func buildDoubleArrow(b *board.Board) {
	buildArrow(b)
	place(b, true,
		[2]int{3, 2}, [2]int{3, 4},
		[2]int{4, 1}, [2]int{4, 2}, [2]int{4, 4}, [2]int{4, 5},
	)
	place(b, false, [2]int{6, 0}, [2]int{6, 2})
}

func buildFireplace(b *board.Board) {
	b.Clear()
	place(b, true,
		[2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2},
		[2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2},
		[2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4},
		[2]int{3, 2}, [2]int{3, 4},
	)
}

func buildPlus(b *board.Board) {
	b.Clear()
	place(b, true,
		[2]int{1, 1},
		[2]int{2, 3},
		[2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4}, [2]int{3, 5},
		[2]int{4, 3},
		[2]int{5, 1},
	)
}

func buildPyramid(b *board.Board) {
	b.Clear()
	place(b, true,
		[2]int{1, 1},
		[2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4},
		[2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4}, [2]int{3, 5},
		[2]int{4, 0}, [2]int{4, 1}, [2]int{4, 2}, [2]int{4, 3}, [2]int{4, 4}, [2]int{4, 5}, [2]int{4, 6},
	)
}

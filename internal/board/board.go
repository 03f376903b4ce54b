// internal/board/board.go
//
// Occupancy grid for the cross-shaped Hi-Q board.
//
// Shape:
//   - 7 rows; rows 0,1,5,6 are 3 cells wide, rows 2,3,4 are 7 cells wide.
//   - Narrow rows are indexed 0..2 and sit over columns 2..4 of the wide band.
//   - The center cell is (3,3).
//
// Invalid coordinates never fault: queries answer false and writes are no-ops,
// since callers routinely probe past the edge of the jagged grid.

package board

// Center of the board (also the only "perfect win" cell).
const (
	CenterRow = 3
	CenterCol = 3
)

// Board widths, top to bottom.
var rowWidths = [...]int{3, 3, 7, 7, 7, 3, 3}

// Position addresses a single cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center returns the center cell.
func Center() Position { return Position{Row: CenterRow, Col: CenterCol} }

// Board holds one "peg present" flag per valid cell.
type Board struct {
	cells [][]bool
}

// New returns an empty board.
func New() *Board {
	cells := make([][]bool, len(rowWidths))
	for i, w := range rowWidths {
		cells[i] = make([]bool, w)
	}
	return &Board{cells: cells}
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return len(b.cells) }

// Width returns the number of cells in row, or 0 for an invalid row.
func (b *Board) Width(row int) int {
	if !b.ValidRow(row) {
		return 0
	}
	return len(b.cells[row])
}

// Widths returns a copy of the per-row widths.
func (b *Board) Widths() []int {
	out := make([]int, len(b.cells))
	for i := range b.cells {
		out[i] = len(b.cells[i])
	}
	return out
}

// ValidRow reports whether row is inside the board.
func (b *Board) ValidRow(row int) bool {
	return row >= 0 && row < len(b.cells)
}

// Valid reports whether (row, col) is a cell of the board.
func (b *Board) Valid(row, col int) bool {
	return b.ValidRow(row) && col >= 0 && col < len(b.cells[row])
}

// IsOccupied reports whether a peg sits at (row, col).
func (b *Board) IsOccupied(row, col int) bool {
	if !b.Valid(row, col) {
		return false
	}
	return b.cells[row][col]
}

// SetOccupied places or removes a peg. Invalid coordinates are ignored.
func (b *Board) SetOccupied(row, col int, v bool) {
	if !b.Valid(row, col) {
		return
	}
	b.cells[row][col] = v
}

// Count returns the number of pegs on the board.
func (b *Board) Count() int {
	n := 0
	for _, row := range b.cells {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Clear removes every peg.
func (b *Board) Clear() { b.fill(false) }

// FillAll puts a peg on every cell.
func (b *Board) FillAll() { b.fill(true) }

func (b *Board) fill(v bool) {
	for _, row := range b.cells {
		for j := range row {
			row[j] = v
		}
	}
}

// Occupied lists every peg position in row-major order.
func (b *Board) Occupied() []Position {
	out := make([]Position, 0, b.Count())
	for i, row := range b.cells {
		for j, v := range row {
			if v {
				out = append(out, Position{Row: i, Col: j})
			}
		}
	}
	return out
}

// Snapshot returns a deep copy of the grid, suitable for serialization.
func (b *Board) Snapshot() [][]bool {
	out := make([][]bool, len(b.cells))
	for i, row := range b.cells {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

package game

import "fmt"

// Size is the number of cells on the board.
const Size = 9

// Board is the 3x3 grid stored row-major, indices 0-8.
type Board [Size]PlayerMark

// WinPatterns lists every line: rows, columns, then diagonals.
var WinPatterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Place marks the cell at index. It never overwrites a cell.
func (b *Board) Place(index int, mark PlayerMark) error {
	if index < BorderMin || index > BorderMax {
		return fmt.Errorf("%w: %w: %d", ErrInvalidMove, ErrOutOfRange, index)
	}
	if !mark.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidMove, ErrInvalidMark, mark)
	}
	if b[index] != None {
		return fmt.Errorf("%w: %w: %d", ErrInvalidMove, ErrCellOccupied, index)
	}
	b[index] = mark
	return nil
}

// CheckWin reports whether mark owns all three cells of any win pattern.
func (b Board) CheckWin(mark PlayerMark) bool {
	if mark == None {
		return false
	}
	for _, p := range WinPatterns {
		if b[p[0]] == mark && b[p[1]] == mark && b[p[2]] == mark {
			return true
		}
	}
	return false
}

// Winner returns the mark holding a complete line, or None.
func (b Board) Winner() PlayerMark {
	switch {
	case b.CheckWin(PlayerX):
		return PlayerX
	case b.CheckWin(PlayerO):
		return PlayerO
	}
	return None
}

// IsFull checks if no cell is empty.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// EmptyIndices returns the empty cells in ascending order.
func (b Board) EmptyIndices() []int {
	indices := make([]int, 0, Size)
	for i, cell := range b {
		if cell == None {
			indices = append(indices, i)
		}
	}
	return indices
}

// MarkCount returns the number of occupied cells.
func (b Board) MarkCount() int {
	return Size - len(b.EmptyIndices())
}

// Strings converts the board for the wire.
func (b Board) Strings() []string {
	cells := make([]string, Size)
	for i, cell := range b {
		cells[i] = string(cell)
	}
	return cells
}

// ParseBoard builds a Board from wire cells; anything other than X, O or
// the empty string is rejected.
func ParseBoard(cells []string) (Board, error) {
	var b Board
	if len(cells) != Size {
		return b, fmt.Errorf("%w: board must have %d cells, got %d", ErrInvalidMove, Size, len(cells))
	}
	for i, c := range cells {
		mark := PlayerMark(c)
		if mark != None && !mark.Valid() {
			return b, fmt.Errorf("%w: %w: %q at %d", ErrInvalidMove, ErrInvalidMark, c, i)
		}
		b[i] = mark
	}
	return b, nil
}

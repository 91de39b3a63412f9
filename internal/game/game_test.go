package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = None
)

func TestCheckWin(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		mark  PlayerMark
		want  bool
	}{
		{
			name:  "No winner - empty board",
			board: Board{},
			mark:  PlayerX,
			want:  false,
		},
		{
			name:  "Empty mark never wins",
			board: Board{},
			mark:  None,
			want:  false,
		},
		{
			name: "No winner - partial board",
			board: Board{
				x, e, e,
				e, o, e,
				e, e, e,
			},
			mark: PlayerX,
			want: false,
		},
		{
			name: "X wins - first row",
			board: Board{
				x, x, x,
				e, o, e,
				e, e, o,
			},
			mark: PlayerX,
			want: true,
		},
		{
			name: "O does not win when X owns the row",
			board: Board{
				x, x, x,
				e, o, e,
				e, e, o,
			},
			mark: PlayerO,
			want: false,
		},
		{
			name: "O wins - second column",
			board: Board{
				x, o, e,
				x, o, e,
				e, o, e,
			},
			mark: PlayerO,
			want: true,
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				x, e, e,
				e, x, e,
				e, e, x,
			},
			mark: PlayerX,
			want: true,
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				e, e, o,
				e, o, e,
				o, e, e,
			},
			mark: PlayerO,
			want: true,
		},
		{
			name: "No winner - full board (draw)",
			board: Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			mark: PlayerX,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.CheckWin(tt.mark); got != tt.want {
				t.Errorf("CheckWin(%q) got = %v, want %v", tt.mark, got, tt.want)
			}
		})
	}
}

// Every one of the 3^9 boards is checked against a direct reading of the
// win patterns.
func TestCheckWin_AllBoards(t *testing.T) {
	marks := [3]PlayerMark{None, PlayerX, PlayerO}
	for code := 0; code < 19683; code++ {
		var b Board
		n := code
		for i := range b {
			b[i] = marks[n%3]
			n /= 3
		}

		for _, mark := range []PlayerMark{PlayerX, PlayerO} {
			want := false
			for _, p := range WinPatterns {
				if b[p[0]] != None && b[p[0]] == b[p[1]] && b[p[1]] == b[p[2]] && b[p[0]] == mark {
					want = true
				}
			}
			if got := b.CheckWin(mark); got != want {
				t.Fatalf("CheckWin(%q) on %v got %v, want %v", mark, b, got, want)
			}
		}
		assert.Equal(t, Size, len(b.EmptyIndices())+b.MarkCount())
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "Empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name: "Partial board is not full",
			board: Board{
				x, e, e,
				e, o, e,
				e, e, e,
			},
			want: false,
		},
		{
			name: "Full board is full",
			board: Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: true,
		},
		{
			name: "Full board with winner is full",
			board: Board{
				x, x, x,
				o, o, x,
				o, x, o,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmptyIndices(t *testing.T) {
	b := Board{
		x, e, o,
		e, e, x,
		o, e, e,
	}
	assert.Equal(t, []int{1, 3, 4, 7, 8}, b.EmptyIndices())
	assert.Equal(t, 4, b.MarkCount())
	assert.Empty(t, Board{x, o, x, x, o, o, o, x, x}.EmptyIndices())
	assert.Len(t, Board{}.EmptyIndices(), Size)
}

func TestBoard_Place(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		mark    PlayerMark
		wantErr error
	}{
		{name: "first cell", index: 0, mark: PlayerX},
		{name: "last cell", index: 8, mark: PlayerO},
		{name: "negative index", index: -1, mark: PlayerX, wantErr: ErrOutOfRange},
		{name: "index past the board", index: 9, mark: PlayerX, wantErr: ErrOutOfRange},
		{name: "occupied cell", index: 4, mark: PlayerO, wantErr: ErrCellOccupied},
		{name: "empty mark", index: 1, mark: None, wantErr: ErrInvalidMark},
		{name: "unknown mark", index: 1, mark: "Z", wantErr: ErrInvalidMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Board{4: PlayerX}
			before := b

			err := b.Place(tt.index, tt.mark)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.mark, b[tt.index])
				return
			}
			assert.ErrorIs(t, err, ErrInvalidMove)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, b, "rejected move must not change the board")
		})
	}
}

func TestGame_Move(t *testing.T) {
	t.Run("turns alternate", func(t *testing.T) {
		g := NewGame(StartingMark)

		require.NoError(t, g.Move(0))
		assert.Equal(t, PlayerO, g.CurrentTurn)
		require.NoError(t, g.Move(4))
		assert.Equal(t, PlayerX, g.CurrentTurn)
		assert.True(t, g.Active())
	})

	t.Run("win ends the game and keeps the winner to move", func(t *testing.T) {
		g := NewGame(PlayerX)
		for _, idx := range []int{0, 3, 1, 4, 2} {
			require.NoError(t, g.Move(idx))
		}

		assert.Equal(t, PlayerX, g.Winner)
		assert.False(t, g.Active())
		assert.Equal(t, PlayerX, g.CurrentTurn)

		err := g.Move(5)
		assert.True(t, errors.Is(err, ErrGameFinished))
		assert.True(t, errors.Is(err, ErrInvalidMove))
		assert.Equal(t, None, g.Board[5])
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		g := NewGame(PlayerX)
		// X O X / X O O / O X X
		for _, idx := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			require.NoError(t, g.Move(idx))
		}

		assert.True(t, g.IsDraw)
		assert.Equal(t, None, g.Winner)
		assert.False(t, g.Active())
	})

	t.Run("occupied cell keeps the turn", func(t *testing.T) {
		g := NewGame(PlayerX)
		require.NoError(t, g.Move(0))

		err := g.Move(0)

		assert.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, PlayerO, g.CurrentTurn)
	})
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, PlayerO, Opponent(PlayerX))
	assert.Equal(t, PlayerX, Opponent(PlayerO))
	assert.Equal(t, None, Opponent(None))
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard([]string{"X", "", "O", "", "", "", "", "", ""})
	require.NoError(t, err)
	assert.Equal(t, Board{0: PlayerX, 2: PlayerO}, b)
	assert.Equal(t, []string{"X", "", "O", "", "", "", "", "", ""}, b.Strings())

	_, err = ParseBoard([]string{"X"})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = ParseBoard([]string{"X", "", "Q", "", "", "", "", "", ""})
	assert.ErrorIs(t, err, ErrInvalidMark)
}

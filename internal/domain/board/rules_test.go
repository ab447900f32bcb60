package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustBoard builds a board from diagram rows. '.' is empty, 'X' black,
// 'O' white; spaces are ignored.
func mustBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	b := New(len(rows))
	for y, row := range rows {
		x := 0
		for _, r := range row {
			switch r {
			case ' ':
				continue
			case '.':
				// empty
			case 'X':
				b.Place(x, y, Black)
			case 'O':
				b.Place(x, y, White)
			default:
				t.Fatalf("bad diagram rune %q", r)
			}
			x++
		}
		require.Equal(t, len(rows), x, "diagram row %d has wrong width", y)
	}
	return b
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, Black, White.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	// involutive
	assert.Equal(t, Black, Black.Opponent().Opponent())
}

var libertiesTests = []struct {
	name  string
	rows  []string
	x, y  int
	libs  int
	group int
}{
	{
		name: "lone stone in the center",
		rows: []string{
			". . .",
			". X .",
			". . .",
		},
		x: 1, y: 1, libs: 4, group: 1,
	},
	{
		name: "lone stone in the corner",
		rows: []string{
			"X . .",
			". . .",
			". . .",
		},
		x: 0, y: 0, libs: 2, group: 1,
	},
	{
		name: "shared liberty counted once",
		rows: []string{
			". . . .",
			". X X .",
			". X . .",
			". . . .",
		},
		x: 1, y: 1, libs: 7, group: 3,
	},
	{
		name: "group in atari",
		rows: []string{
			". O . .",
			"O X O .",
			"O X O .",
			". . . .",
		},
		x: 1, y: 1, libs: 1, group: 2,
	},
	{
		name: "enemy stones are not liberties",
		rows: []string{
			"X O .",
			"O . .",
			". . .",
		},
		x: 0, y: 0, libs: 0, group: 1,
	},
}

func TestLiberties(t *testing.T) {
	for _, tt := range libertiesTests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			libs, group := b.Liberties(tt.x, tt.y)
			assert.Equal(t, tt.libs, libs)
			assert.Len(t, group, tt.group)
		})
	}
}

func TestLibertiesEmptyPoint(t *testing.T) {
	b := New(5)
	libs, group := b.Liberties(2, 2)
	assert.Equal(t, 0, libs)
	assert.Nil(t, group)
}

func TestLibertiesIsReadOnly(t *testing.T) {
	b := mustBoard(t,
		". O .",
		"O X O",
		". X .",
	)
	before := b.Clone()
	for i := 0; i < 3; i++ {
		libs, group := b.Liberties(1, 1)
		assert.Equal(t, 2, libs)
		assert.Len(t, group, 2)
	}
	assert.True(t, b.Equal(before), "Liberties must not mutate the board")
}

var captureTests = []struct {
	name     string
	rows     []string
	x, y     int
	color    Color
	captured []Point
	after    []string
}{
	{
		// Spec scenario: lone white stone at (4,4) surrounded on three
		// sides; black fills the last liberty at (4,5).
		name: "single stone capture on 9x9",
		rows: []string{
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . X . . . .",
			". . . X O X . . .",
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
		},
		x: 4, y: 5, color: Black,
		captured: []Point{{4, 4}},
		after: []string{
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . X . . . .",
			". . . X . X . . .",
			". . . . X . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
			". . . . . . . . .",
		},
	},
	{
		name: "two stone group capture",
		rows: []string{
			". O . .",
			"O X O .",
			"O X O .",
			". . . .",
		},
		x: 1, y: 3, color: White,
		captured: []Point{{1, 1}, {1, 2}},
		after: []string{
			". O . .",
			"O . O .",
			"O . O .",
			". O . .",
		},
	},
	{
		name: "two separate groups captured by one move",
		rows: []string{
			". X X X",
			"X O . O",
			". X X X",
			". . . .",
		},
		x: 2, y: 1, color: Black,
		captured: []Point{{1, 1}, {3, 1}},
		after: []string{
			". X X X",
			"X . X .",
			". X X X",
			". . . .",
		},
	},
	{
		name: "capture on the edge",
		rows: []string{
			". . . .",
			". . . .",
			". X X .",
			"X O O .",
		},
		x: 3, y: 3, color: Black,
		captured: []Point{{1, 3}, {2, 3}},
		after: []string{
			". . . .",
			". . . .",
			". X X .",
			"X . . X",
		},
	},
	{
		name: "group with two liberties survives filling one",
		rows: []string{
			". O . .",
			"O X O .",
			". X O .",
			". . . .",
		},
		x: 1, y: 3, color: White,
		captured: nil,
		after: []string{
			". O . .",
			"O X O .",
			". X O .",
			". O . .",
		},
	},
	{
		name: "own color is never captured",
		rows: []string{
			"X X .",
			"X . .",
			". . .",
		},
		x: 1, y: 1, color: Black,
		captured: nil,
		after: []string{
			"X X .",
			"X X .",
			". . .",
		},
	},
}

func TestApplyCaptures(t *testing.T) {
	for _, tt := range captureTests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			b.Place(tt.x, tt.y, tt.color)
			captured := b.ApplyCaptures(tt.x, tt.y, tt.color)
			assert.ElementsMatch(t, tt.captured, captured)
			want := mustBoard(t, tt.after...)
			assert.True(t, b.Equal(want), "got:\n%s\nwant:\n%s", b, want)
		})
	}
}

func TestCaptureLeavesNoWhiteStones(t *testing.T) {
	b := mustBoard(t,
		". . . . . . . . .",
		". . . . . . . . .",
		". . . . . . . . .",
		". . . . X . . . .",
		". . . X O X . . .",
		". . . . . . . . .",
		". . . . . . . . .",
		". . . . . . . . .",
		". . . . . . . . .",
	)
	b.Place(4, 5, Black)
	b.ApplyCaptures(4, 5, Black)
	assert.Empty(t, b.Stones(White))
}

func TestIsLegal(t *testing.T) {
	b := mustBoard(t,
		". X .",
		"X O .",
		". . .",
	)

	t.Run("out of bounds", func(t *testing.T) {
		assert.False(t, b.IsLegal(-1, 0, Black, nil))
		assert.False(t, b.IsLegal(0, 3, Black, nil))
	})

	t.Run("occupied", func(t *testing.T) {
		assert.False(t, b.IsLegal(1, 1, Black, nil))
		assert.False(t, b.IsLegal(1, 0, White, nil))
	})

	t.Run("ordinary move", func(t *testing.T) {
		assert.True(t, b.IsLegal(2, 2, White, nil))
	})
}

func TestIsLegalSuicide(t *testing.T) {
	b := mustBoard(t,
		". X .",
		"X . X",
		". X .",
	)
	assert.False(t, b.IsLegal(1, 1, White, nil), "single stone suicide")
	assert.True(t, b.IsLegal(1, 1, Black, nil), "filling own eye is legal, just unwise")

	// Two-stone suicide: white connecting at (1,1) leaves the pair
	// with no liberties.
	b2 := mustBoard(t,
		". X X .",
		"X . O X",
		". X X .",
		". . . .",
	)
	assert.False(t, b2.IsLegal(1, 1, White, nil))
}

func TestIsLegalCaptureBeatsSuicide(t *testing.T) {
	// The point (0,0) has no liberties for white, but playing there
	// captures the black stone first.
	b := mustBoard(t,
		". X O",
		"X O .",
		"O . .",
	)
	assert.True(t, b.IsLegal(0, 0, White, nil))
}

func TestIsLegalSimpleKo(t *testing.T) {
	cur := mustBoard(t,
		". X O .",
		"X . X O",
		". X O .",
		". . . .",
	)
	prev := mustBoard(t,
		". X O .",
		"X O . O",
		". X O .",
		". . . .",
	)
	// White retaking at (1,1) recreates prev exactly.
	assert.False(t, cur.IsLegal(1, 1, White, prev), "ko retake must be rejected")
	assert.True(t, cur.IsLegal(1, 1, White, nil), "without a previous board the retake is legal")

	// A different previous position does not trigger the ko check.
	other := mustBoard(t,
		". . . .",
		". . . .",
		". . . .",
		". . . .",
	)
	assert.True(t, cur.IsLegal(1, 1, White, other))
}

func TestIsLegalDoesNotMutate(t *testing.T) {
	b := mustBoard(t,
		". O .",
		"O X O",
		". X .",
	)
	before := b.Clone()
	first := b.IsLegal(0, 2, White, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, b.IsLegal(0, 2, White, nil))
	}
	assert.True(t, b.Equal(before))
}

func TestMovingGroupKeepsLibertyOrCaptures(t *testing.T) {
	b := mustBoard(t,
		". X O .",
		"X O . .",
		". . O .",
		". . . .",
	)
	for _, p := range b.LegalMoves(Black, nil) {
		next := b.Clone()
		next.Place(p.X, p.Y, Black)
		captured := next.ApplyCaptures(p.X, p.Y, Black)
		libs, _ := next.Liberties(p.X, p.Y)
		assert.True(t, libs >= 1 || len(captured) >= 1,
			"move at (%d,%d) left its own group dead without capturing", p.X, p.Y)
	}
}

var protectedTests = []struct {
	name  string
	rows  []string
	x, y  int
	color Color
	want  bool
}{
	{
		name: "true eye in the center",
		rows: []string{
			". . . . .",
			". X X X .",
			". X . X .",
			". X X X .",
			". . . . .",
		},
		x: 2, y: 2, color: Black, want: true,
	},
	{
		name: "center eye with one opponent diagonal still holds",
		rows: []string{
			". . . . .",
			". O X X .",
			". X . X .",
			". X X X .",
			". . . . .",
		},
		x: 2, y: 2, color: Black, want: true,
	},
	{
		name: "two opponent diagonals make a false eye",
		rows: []string{
			". . . . .",
			". O X X .",
			". X . X .",
			". X X O .",
			". . . . .",
		},
		x: 2, y: 2, color: Black, want: false,
	},
	{
		name: "orthogonal neighbor missing",
		rows: []string{
			". . . . .",
			". X X X .",
			". X . X .",
			". X . X .",
			". . . . .",
		},
		x: 2, y: 2, color: Black, want: false,
	},
	{
		name: "orthogonal neighbor held by opponent",
		rows: []string{
			". . . . .",
			". X O X .",
			". X . X .",
			". X X X .",
			". . . . .",
		},
		x: 2, y: 2, color: Black, want: false,
	},
	{
		name: "corner eye with clean diagonal",
		rows: []string{
			". X .",
			"X X .",
			". . .",
		},
		x: 0, y: 0, color: Black, want: true,
	},
	{
		name: "corner eye with opponent on the only diagonal",
		rows: []string{
			". X .",
			"X O .",
			". . .",
		},
		x: 0, y: 0, color: Black, want: false,
	},
	{
		name: "edge eye with one opponent diagonal",
		rows: []string{
			"X . X . .",
			"O X . . .",
			". . . . .",
			". . . . .",
			". . . . .",
		},
		x: 1, y: 0, color: Black, want: false,
	},
	{
		name: "edge eye with clean diagonals",
		rows: []string{
			"X . X . .",
			". X . . .",
			". . . . .",
			". . . . .",
			". . . . .",
		},
		x: 1, y: 0, color: Black, want: true,
	},
	{
		name: "occupied point is never protected",
		rows: []string{
			". X .",
			"X X .",
			". . .",
		},
		x: 1, y: 0, color: Black, want: false,
	},
}

func TestIsProtectedPoint(t *testing.T) {
	for _, tt := range protectedTests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			assert.Equal(t, tt.want, b.IsProtectedPoint(tt.x, tt.y, tt.color))
		})
	}
}

func TestProtectedPointAllDiagonalsOwn(t *testing.T) {
	b := mustBoard(t,
		". . . . .",
		". X X X .",
		". X . X .",
		". X X X .",
		". . . . .",
	)
	assert.True(t, b.IsProtectedPoint(2, 2, Black))

	b.Place(1, 1, White)
	b.Place(3, 3, White)
	assert.False(t, b.IsProtectedPoint(2, 2, Black))
}

func TestLegalMovesEmptyBoard(t *testing.T) {
	for _, size := range []int{5, 9} {
		b := New(size)
		moves := b.LegalMoves(Black, nil)
		assert.Len(t, moves, size*size)
	}
}

func TestLegalMovesOrderIsRowMajor(t *testing.T) {
	b := New(3)
	moves := b.LegalMoves(White, nil)
	require.Len(t, moves, 9)
	assert.Equal(t, Point{0, 0}, moves[0])
	assert.Equal(t, Point{1, 0}, moves[1])
	assert.Equal(t, Point{2, 0}, moves[2])
	assert.Equal(t, Point{0, 1}, moves[3])
	assert.Equal(t, Point{2, 2}, moves[8])
}

func TestLegalMovesExcludesIllegal(t *testing.T) {
	b := mustBoard(t,
		". X .",
		"X . X",
		". X .",
	)
	// Every empty point is adjacent only to black stones, so white has
	// nothing but suicides left.
	assert.Empty(t, b.LegalMoves(White, nil))

	moves := b.LegalMoves(Black, nil)
	assert.Len(t, moves, 5)
	assert.Contains(t, moves, Point{1, 1})
	assert.NotContains(t, moves, Point{1, 0}, "occupied point must be excluded")
}

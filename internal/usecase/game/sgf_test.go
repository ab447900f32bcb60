package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goban/internal/domain/game"
)

func TestSerializeAndParseRoundTrip(t *testing.T) {
	uc := NewGameUseCase(nil, nil)
	minSGF := uc.PrepareSgfFile(game.Game{
		BoardSize:   9,
		Komi:        6.5,
		PlayerBlack: "alice",
		PlayerWhite: "bob",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	text := SerializeSGF(&minSGF)
	text = AppendMoveToSgf(text, game.Move{Color: "B", Coordinates: "dd"})
	text = AppendMoveToSgf(text, game.Move{Color: "W", Coordinates: "cc"})
	text = AppendMoveToSgf(text, game.Move{Color: "B", Coordinates: ""}) // pass

	parsed, err := ParseSGF(text)
	require.NoError(t, err)

	assert.Equal(t, 9, BoardSizeFromSGF(parsed))
	assert.Equal(t, []game.Move{
		{Color: "B", Coordinates: "dd"},
		{Color: "W", Coordinates: "cc"},
		{Color: "B", Coordinates: ""},
	}, MainLineMoves(parsed))
}

func TestParseSGFVariationsMainLineFirst(t *testing.T) {
	parsed, err := ParseSGF("(;FF[4]SZ[9];B[dd](;W[cc];B[ee])(;W[dc]))")
	require.NoError(t, err)

	require.Len(t, parsed.Root.Children, 2)
	assert.Equal(t, []game.Move{
		{Color: "B", Coordinates: "dd"},
		{Color: "W", Coordinates: "cc"},
		{Color: "B", Coordinates: "ee"},
	}, MainLineMoves(parsed))
}

func TestParseSGFEscapedValue(t *testing.T) {
	parsed, err := ParseSGF(`(;FF[4]C[a \] b];B[dd])`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a ] b"}, parsed.Root.Nodes[0].Properties["C"])
}

func TestParseSGFMultiValueProperty(t *testing.T) {
	parsed, err := ParseSGF("(;FF[4]AB[aa][bb][cc])")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb", "cc"}, parsed.Root.Nodes[0].Properties["AB"])
}

func TestParseSGFRejectsMalformed(t *testing.T) {
	for _, text := range []string{
		"",
		"(;B[dd]",       // unterminated tree
		"(;B[dd)",       // unterminated value
		"()",            // no nodes
		";B[dd]",        // missing open paren
		"(;B[dd])junk",  // trailing garbage
		"(;B)",          // property without value
	} {
		_, err := ParseSGF(text)
		assert.Error(t, err, "input %q", text)
	}
}

func TestBoardSizeFromSGFDefaults(t *testing.T) {
	parsed, err := ParseSGF("(;FF[4];B[dd])")
	require.NoError(t, err)
	assert.Equal(t, 19, BoardSizeFromSGF(parsed))
}

package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goban/internal/domain/board"
)

func TestSGFRoundTrip(t *testing.T) {
	tests := []struct {
		s string
		p board.Point
	}{
		{"aa", board.Point{X: 0, Y: 0}},
		{"dd", board.Point{X: 3, Y: 3}},
		{"sa", board.Point{X: 18, Y: 0}},
		{"ss", board.Point{X: 18, Y: 18}},
	}
	for _, tt := range tests {
		p, err := ParseSGF(tt.s, 19)
		require.NoError(t, err)
		assert.Equal(t, tt.p, p)
		assert.Equal(t, tt.s, SGF(p))
	}
}

func TestParseSGFPass(t *testing.T) {
	for _, s := range []string{"", "tt"} {
		p, err := ParseSGF(s, 19)
		require.NoError(t, err)
		assert.Equal(t, Pass, p)
	}

	// On a 21×21 board "tt" is a real point.
	p, err := ParseSGF("tt", 21)
	require.NoError(t, err)
	assert.Equal(t, board.Point{X: 19, Y: 19}, p)
}

func TestParseSGFRejectsBadInput(t *testing.T) {
	for _, s := range []string{"d", "ddd", "zz", "d$"} {
		_, err := ParseSGF(s, 19)
		assert.Error(t, err, "input %q", s)
	}
}

func TestGTPSkipsI(t *testing.T) {
	// Column 8 is J, not I.
	assert.Equal(t, "J1", GTP(board.Point{X: 8, Y: 18}, 19))
	assert.Equal(t, "H19", GTP(board.Point{X: 7, Y: 0}, 19))

	p, err := ParseGTP("J1", 19)
	require.NoError(t, err)
	assert.Equal(t, board.Point{X: 8, Y: 18}, p)

	_, err = ParseGTP("I5", 19)
	assert.Error(t, err)
}

func TestGTPRoundTrip(t *testing.T) {
	for _, s := range []string{"A1", "D4", "Q16", "T19", "C9"} {
		p, err := ParseGTP(s, 19)
		require.NoError(t, err)
		assert.Equal(t, s, GTP(p, 19))
	}
}

func TestGTPPass(t *testing.T) {
	assert.Equal(t, "pass", GTP(Pass, 19))
	p, err := ParseGTP("PASS", 19)
	require.NoError(t, err)
	assert.Equal(t, Pass, p)
}

func TestParseGTPRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "D", "D0", "D20", "Z3", "44"} {
		_, err := ParseGTP(s, 19)
		assert.Error(t, err, "input %q", s)
	}
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOnInvalidSize(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-3) })
}

func TestAtPanicsOutOfBounds(t *testing.T) {
	b := New(5)
	assert.Panics(t, func() { b.At(5, 0) })
	assert.Panics(t, func() { b.Place(0, -1, Black) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(5)
	b.Place(2, 2, Black)

	c := b.Clone()
	assert.True(t, b.Equal(c))

	c.Place(0, 0, White)
	assert.False(t, b.Equal(c))
	assert.Equal(t, Empty, b.At(0, 0))
}

func TestEqualIsCellByCell(t *testing.T) {
	a := New(3)
	b := New(3)
	a.Place(1, 1, Black)
	b.Place(1, 1, Black)
	assert.True(t, a.Equal(b), "distinct values with identical cells must compare equal")

	b.Place(1, 1, White)
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(New(5)), "different sizes never compare equal")
	assert.False(t, a.Equal(nil))
}

func TestStones(t *testing.T) {
	b := New(3)
	b.Place(2, 0, Black)
	b.Place(0, 1, Black)
	b.Place(1, 1, White)

	assert.Equal(t, []Point{{2, 0}, {0, 1}}, b.Stones(Black))
	assert.Equal(t, []Point{{1, 1}}, b.Stones(White))
	assert.Len(t, b.Stones(Empty), 6)
}

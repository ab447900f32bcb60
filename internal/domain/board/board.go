// Package board implements the rules of Go on a fixed-size board:
// group and liberty analysis, capture resolution, move legality with
// suicide and simple-ko checks, and legal move enumeration.
//
// The package is a stateless function library. Every operation either
// leaves its receiver untouched or mutates a copy the caller explicitly
// owns; nothing is cached between calls.
package board

import (
	"fmt"
	"strings"
)

// Color is the state of one cell.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player's color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "·"
}

// Point is a zero-based board coordinate, x counted from the left
// column and y from the top row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is an N×N grid of cells. Construct it with New; a zero Board
// is not usable.
type Board struct {
	size  int
	cells []Color
}

func New(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]Color, size*size),
	}
}

func (b *Board) Size() int { return b.size }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// At returns the cell at (x, y). Out-of-bounds coordinates are a
// caller error and panic.
func (b *Board) At(x, y int) Color {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board: point (%d,%d) outside %d×%d board", x, y, b.size, b.size))
	}
	return b.cells[y*b.size+x]
}

// Place sets the cell at (x, y). It is the placement half of a move;
// captures are resolved separately by ApplyCaptures.
func (b *Board) Place(x, y int, c Color) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board: point (%d,%d) outside %d×%d board", x, y, b.size, b.size))
	}
	b.cells[y*b.size+x] = c
}

// Clone returns a deep copy sharing no memory with the receiver.
func (b *Board) Clone() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports cell-for-cell equality. This, not pointer identity, is
// what the ko rule compares.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Stones returns the points occupied by the given color, in row-major
// order.
func (b *Board) Stones(c Color) []Point {
	var retVal []Point
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.cells[y*b.size+x] == c {
				retVal = append(retVal, Point{x, y})
			}
		}
	}
	return retVal
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[y*b.size+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

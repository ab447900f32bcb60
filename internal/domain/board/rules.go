package board

var adjacents = [4]Point{
	{0, -1},
	{-1, 0},
	{1, 0},
	{0, 1},
}

var diagonals = [4]Point{
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
}

// Liberties computes the connected same-color group containing the
// stone at (x, y) and its liberty count. A liberty visible from two
// stones of the group counts once. If (x, y) is empty the result is
// the degenerate (0, nil).
//
// The traversal uses an explicit work list rather than recursion so
// that dragon-sized groups on large boards cannot blow the stack.
func (b *Board) Liberties(x, y int) (int, []Point) {
	c := b.At(x, y)
	if c == Empty {
		return 0, nil
	}

	seen := make([]bool, len(b.cells))
	libs := make(map[Point]struct{})
	var group []Point

	work := []Point{{x, y}}
	seen[y*b.size+x] = true
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		group = append(group, p)

		for _, d := range adjacents {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !b.InBounds(nx, ny) {
				continue
			}
			switch b.cells[ny*b.size+nx] {
			case Empty:
				libs[Point{nx, ny}] = struct{}{}
			case c:
				if !seen[ny*b.size+nx] {
					seen[ny*b.size+nx] = true
					work = append(work, Point{nx, ny})
				}
			}
		}
	}
	return len(libs), group
}

// ApplyCaptures removes every opposing group left without liberties by
// the stone just placed at (x, y), mutating the receiver, and returns
// the removed points. Each of the up to four neighbor groups is
// resolved independently; a group already removed reads as empty and
// is not re-examined. The mover's own color is never captured.
func (b *Board) ApplyCaptures(x, y int, c Color) []Point {
	opp := c.Opponent()
	var captured []Point
	for _, d := range adjacents {
		nx, ny := x+d.X, y+d.Y
		if !b.InBounds(nx, ny) || b.cells[ny*b.size+nx] != opp {
			continue
		}
		if libs, group := b.Liberties(nx, ny); libs == 0 {
			for _, p := range group {
				b.cells[p.Y*b.size+p.X] = Empty
			}
			captured = append(captured, group...)
		}
	}
	return captured
}

// IsLegal reports whether color may play at (x, y). The previous board
// enables simple-ko detection and may be nil, in which case the ko
// check is skipped; there is no cycle detection beyond the single
// preceding snapshot. The receiver is never mutated; the move is
// simulated on a private copy.
func (b *Board) IsLegal(x, y int, c Color, previous *Board) bool {
	if !b.InBounds(x, y) {
		return false
	}
	if b.At(x, y) != Empty {
		return false
	}

	next := b.Clone()
	next.Place(x, y, c)
	captured := next.ApplyCaptures(x, y, c)

	// A capturing move always gains at least the liberty where a stone
	// was removed, so suicide only needs checking otherwise.
	if len(captured) == 0 {
		if libs, _ := next.Liberties(x, y); libs == 0 {
			return false
		}
	}

	if previous != nil && next.Equal(previous) {
		return false
	}
	return true
}

// IsProtectedPoint reports whether the empty point (x, y) counts as an
// eye for color: all in-bounds orthogonal neighbors hold the color,
// and the diagonals do not reveal it as false. The point is
// reclassified as unprotected when two or more diagonals hold the
// opponent, or one does while the point sits on an edge or corner
// (fewer than four diagonals on the board).
//
// This is a heuristic for steering automated play away from filling
// its own territory, not an eye-space proof. Move selection is tuned
// to these exact thresholds.
func (b *Board) IsProtectedPoint(x, y int, c Color) bool {
	if b.At(x, y) != Empty {
		return false
	}
	for _, d := range adjacents {
		nx, ny := x+d.X, y+d.Y
		if !b.InBounds(nx, ny) {
			continue
		}
		if b.cells[ny*b.size+nx] != c {
			return false
		}
	}

	opp := c.Opponent()
	onBoard, held := 0, 0
	for _, d := range diagonals {
		nx, ny := x+d.X, y+d.Y
		if !b.InBounds(nx, ny) {
			continue
		}
		onBoard++
		if b.cells[ny*b.size+nx] == opp {
			held++
		}
	}
	if held >= 2 {
		return false
	}
	if held >= 1 && onBoard < 4 {
		return false
	}
	return true
}

// LegalMoves enumerates every point where color may play, in row-major
// order. The sequence is recomputed fresh on each call; callers that
// take the first match rely on the deterministic ordering.
func (b *Board) LegalMoves(c Color, previous *Board) []Point {
	var retVal []Point
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.IsLegal(x, y, c, previous) {
				retVal = append(retVal, Point{x, y})
			}
		}
	}
	return retVal
}

// Package coords translates between the engine's zero-based points and
// the two textual notations the rest of the service speaks: SGF
// two-letter coordinates ("dd") and GTP-style display coordinates
// ("D4", column letters skipping I, rows counted from the bottom).
// The rules engine itself never sees text.
package coords

import (
	"fmt"
	"strconv"
	"strings"

	"goban/internal/domain/board"
)

// I is reserved in board notation, so J follows H.
const columns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// Pass is the off-board sentinel for a passing move.
var Pass = board.Point{X: -1, Y: -1}

// SGF renders a point as a two-letter SGF coordinate; Pass becomes the
// empty string.
func SGF(p board.Point) string {
	if p == Pass {
		return ""
	}
	return string([]byte{byte('a' + p.X), byte('a' + p.Y)})
}

// ParseSGF parses a two-letter SGF coordinate. The empty string (and
// the historical "tt" pass convention) parses to Pass.
func ParseSGF(s string, size int) (board.Point, error) {
	if s == "" || (s == "tt" && size <= 19) {
		return Pass, nil
	}
	if len(s) != 2 {
		return Pass, fmt.Errorf("malformed SGF coordinate %q", s)
	}
	x := int(s[0] - 'a')
	y := int(s[1] - 'a')
	if x < 0 || x >= size || y < 0 || y >= size {
		return Pass, fmt.Errorf("SGF coordinate %q outside %d×%d board", s, size, size)
	}
	return board.Point{X: x, Y: y}, nil
}

// GTP renders a point in display notation, e.g. (3,15) on 19×19 is
// "D4". Pass becomes "pass".
func GTP(p board.Point, size int) string {
	if p == Pass {
		return "pass"
	}
	return fmt.Sprintf("%c%d", columns[p.X], size-p.Y)
}

// ParseGTP parses display notation back to a point.
func ParseGTP(s string, size int) (board.Point, error) {
	if strings.EqualFold(s, "pass") {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, fmt.Errorf("malformed coordinate %q", s)
	}
	col := strings.IndexByte(columns, byte(strings.ToUpper(s)[0]))
	if col < 0 || col >= size {
		return Pass, fmt.Errorf("column of %q outside %d×%d board", s, size, size)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > size {
		return Pass, fmt.Errorf("row of %q outside %d×%d board", s, size, size)
	}
	return board.Point{X: col, Y: size - row}, nil
}

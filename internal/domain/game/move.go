package game

// Move is one played move in SGF terms: Color is "B" or "W",
// Coordinates a two-letter SGF point, empty for a pass.
type Move struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

// MoveResult is the outcome of asking the rules engine to commit a
// move. Rejections are an expected result, not an error.
type MoveResult struct {
	Accepted bool     `json:"accepted"`
	Reason   string   `json:"reason,omitempty"`
	Captured []string `json:"captured,omitempty"` // SGF coordinates of removed stones
	SGF      string   `json:"sgf,omitempty"`
}

type Moves struct {
	Moves []Move `json:"moves"`
}

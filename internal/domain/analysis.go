package domain

// AnalysisRequest is a position sent to the external evaluation engine
// (KataGo analysis protocol).
type AnalysisRequest struct {
	ID               string      `json:"id"`
	Moves            [][2]string `json:"moves"` // [["B","D4"], ["W","Q16"], ...]
	Rules            string      `json:"rules"`
	Komi             float64     `json:"komi"`
	BoardXSize       int         `json:"boardXSize"`
	BoardYSize       int         `json:"boardYSize"`
	MaxVisits        int         `json:"maxVisits,omitempty"`
	IncludeOwnership bool        `json:"includeOwnership,omitempty"`
}

// AnalysisResponse carries the engine's evaluation of one position.
type AnalysisResponse struct {
	ID             string     `json:"id"`
	TurnNumber     int        `json:"turnNumber"`
	IsDuringSearch bool       `json:"isDuringSearch"`
	Error          string     `json:"error,omitempty"`
	RootInfo       RootInfo   `json:"rootInfo"`
	MoveInfos      []MoveInfo `json:"moveInfos"`
}

// RootInfo describes the position as a whole.
type RootInfo struct {
	CurrentPlayer string  `json:"currentPlayer"` // "W" or "B"
	Winrate       float64 `json:"winrate"`
	ScoreLead     float64 `json:"scoreLead"`
	ScoreSelfplay float64 `json:"scoreSelfplay"`
	ScoreStdev    float64 `json:"scoreStdev"`
	Utility       float64 `json:"utility"`
	Visits        int     `json:"visits"`
}

// MoveInfo describes one candidate move.
type MoveInfo struct {
	Move      string   `json:"move"`
	Winrate   float64  `json:"winrate"`
	Visits    int      `json:"visits"`
	ScoreLead float64  `json:"scoreLead"`
	PV        []string `json:"pv"`
}

type BotMoveRequest struct {
	BoardSize int         `json:"board_size"`
	Komi      float64     `json:"komi"`
	Color     string      `json:"color"` // "B" or "W"
	SGF       string      `json:"sgf"`
	Moves     [][2]string `json:"moves"` // main line in engine notation
}

package record

import "time"

// Record is one saved game in the library. Folder is a "/"-separated
// path; the folder hierarchy exists only as these paths.
type Record struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Owner       string    `json:"owner" bson:"owner"`
	Folder      string    `json:"folder" bson:"folder"`
	Name        string    `json:"name" bson:"name"`
	SGF         string    `json:"sgf" bson:"sgf"`
	BoardSize   int       `json:"board_size" bson:"board_size"`
	Komi        float64   `json:"komi" bson:"komi"`
	PlayerBlack string    `json:"player_black" bson:"player_black"`
	PlayerWhite string    `json:"player_white" bson:"player_white"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Page struct {
	Records []Record `json:"records"`
	PageNum int      `json:"page_num"`
	Total   int64    `json:"total"`
}

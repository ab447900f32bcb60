package game

import (
	"time"

	"github.com/gorilla/websocket"
)

type Game struct {
	Users         []*GameUser     `json:"users" bson:"users"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	StartedAt     *time.Time      `json:"started_at,omitempty" bson:"started_at,omitempty"`
	Status        string          `json:"status" bson:"status"`
	BoardSize     int             `json:"board_size" bson:"board_size"`
	GameKeySecret string          `json:"game_key_secret,omitempty" bson:"game_key_secret"`
	GameKeyPublic string          `json:"game_key_public" bson:"game_key_public"`
	WhoIsNext     string          `json:"who_is_next" bson:"who_is_next"` // color
	PlayerBlack   string          `json:"player_black" bson:"player_black"`
	PlayerWhite   string          `json:"player_white" bson:"player_white"`
	PlayerBlackWS *websocket.Conn `json:"-" bson:"-"`
	PlayerWhiteWS *websocket.Conn `json:"-" bson:"-"`
	Komi          float64         `json:"komi" bson:"komi"`
	Sgf           string          `json:"sgf,omitempty" bson:"-"`
}

type GameUser struct {
	ID     string          `json:"id" bson:"id"`
	Role   string          `json:"role" bson:"role"`
	Color  string          `json:"color" bson:"color"`
	Rating float64         `json:"rating" bson:"rating"`
	Score  float64         `json:"score" bson:"score"`
	WS     *websocket.Conn `json:"-" bson:"-"`
}

type CreateGameRequest struct {
	BoardSize      int     `json:"board_size"`
	Komi           float64 `json:"komi"`
	IsCreatorBlack bool    `json:"is_creator_black"`
}

type GameCreateResponse struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

type GameJoinRequest struct {
	GameKey string `json:"game_key"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type GameStateResponse struct {
	Move     Move     `json:"move"`
	Captured []string `json:"captured,omitempty"`
	SGF      string   `json:"sgf"`
}

package game

import (
	"context"
	"fmt"
	"time"

	"goban/internal/coords"
	"goban/internal/domain/board"
	"goban/internal/domain/game"
	"goban/internal/errors"
	"goban/internal/statuses"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	PutGame(ctx context.Context, gameData game.Game) bool
	AddPlayer(ctx context.Context, userID string, gameKeySecret string) (game.Game, bool)
	GetGameByGameKey(ctx context.Context, gameKeySecret string) game.Game
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	SaveSGF(key string, sgfText string) error
	LoadSGF(key string) (string, error)
	HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error)
	GetActiveGameByUserId(ctx context.Context, userID string) (game.Game, error)
	LeaveGameBySecretKey(ctx context.Context, secretKey string, userID string) error
}

type GameUseCase struct {
	store GameStore
	llm   LlmStore
}

func NewGameUseCase(store GameStore, llm LlmStore) *GameUseCase {
	return &GameUseCase{store: store, llm: llm}
}

func (g *GameUseCase) CreateGame(ctx context.Context, newGameRequest game.CreateGameRequest, creatorID string) (gameKeyPublic string, gameKeySecret string, err error) {
	gameKeySecret, gameKeyPublic = g.store.GenerateGameKeys(ctx)

	newGame := game.Game{
		BoardSize:     newGameRequest.BoardSize,
		Komi:          newGameRequest.Komi,
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		WhoIsNext:     "B",
		CreatedAt:     time.Now(),
	}

	if newGameRequest.IsCreatorBlack {
		newGame.PlayerBlack = creatorID
	} else {
		newGame.PlayerWhite = creatorID
	}

	ok := g.store.PutGame(ctx, newGame)
	if !ok {
		return "", "", errors.ErrCreateGameFailed
	}

	minSGF := g.PrepareSgfFile(newGame)
	if err = g.store.SaveSGF(gameKeySecret, SerializeSGF(&minSGF)); err != nil {
		return "", "", err
	}

	return gameKeyPublic, gameKeySecret, nil
}

func (g *GameUseCase) JoinGame(ctx context.Context, gameKeySecret string, userID string) (game.Game, error) {
	updatedGame, ok := g.store.AddPlayer(ctx, userID, gameKeySecret)
	if !ok {
		return game.Game{}, errors.ErrJoinGameFailed
	}
	return updatedGame, nil
}

func (g *GameUseCase) LeaveGame(ctx context.Context, userID string) error {
	play, err := g.store.GetActiveGameByUserId(ctx, userID)
	if err != nil {
		return err
	}
	return g.store.LeaveGameBySecretKey(ctx, play.GameKeySecret, userID)
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}

	if play.GameKeySecret == "" {
		return game.Game{}, errors.ErrGameNotFound
	}

	sgfStringOfGame, err := g.store.LoadSGF(play.GameKeySecret)
	if err == nil {
		play.Sgf = sgfStringOfGame
	}

	return play, nil
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	gameFromDb := g.store.GetGameByGameKey(ctx, gameKeySecret)

	if gameFromDb.GameKeySecret == "" {
		return game.Game{}, errors.ErrGameNotFound
	}

	return gameFromDb, nil
}

func (g *GameUseCase) GetSgfStringByGameKey(key string) (string, error) {
	return g.store.LoadSGF(key)
}

func (g *GameUseCase) IsUserInGameByGameId(ctx context.Context, userID string, gameKey string) bool {
	play := g.store.GetGameByGameKey(ctx, gameKey)
	if play.PlayerWhite == userID || play.PlayerBlack == userID {
		return true
	}
	return false
}

func (g *GameUseCase) HasUserActiveGamesByUserId(ctx context.Context, userID string) (bool, error) {
	return g.store.HasUserActiveGameByUserId(ctx, userID)
}

// ApplyMove validates a move against the current record through the
// rules engine and, when accepted, appends it to the stored SGF. A
// rejected move is a normal outcome, not an error; errors mean the
// record itself could not be loaded or replayed.
func (g *GameUseCase) ApplyMove(ctx context.Context, gameKeySecret string, move game.Move) (game.MoveResult, error) {
	sgfText, err := g.store.LoadSGF(gameKeySecret)
	if err != nil {
		return game.MoveResult{}, fmt.Errorf("failed to load game record: %w", err)
	}

	parsed, err := ParseSGF(sgfText)
	if err != nil {
		return game.MoveResult{}, fmt.Errorf("failed to parse game record: %w", err)
	}
	size := BoardSizeFromSGF(parsed)

	color, err := ParseColor(move.Color)
	if err != nil {
		return game.MoveResult{Accepted: false, Reason: err.Error()}, nil
	}

	p, err := coords.ParseSGF(move.Coordinates, size)
	if err != nil {
		return game.MoveResult{Accepted: false, Reason: err.Error()}, nil
	}

	if p == coords.Pass {
		newSGF := AppendMoveToSgf(sgfText, game.Move{Color: move.Color})
		if err := g.store.SaveSGF(gameKeySecret, newSGF); err != nil {
			return game.MoveResult{}, err
		}
		return game.MoveResult{Accepted: true, SGF: newSGF}, nil
	}

	current, previous, err := ReplayMainLine(MainLineMoves(parsed), size)
	if err != nil {
		return game.MoveResult{}, err
	}

	if !current.IsLegal(p.X, p.Y, color, previous) {
		return game.MoveResult{Accepted: false, Reason: "illegal move"}, nil
	}

	// current is our private replay copy, so committing on it is safe
	current.Place(p.X, p.Y, color)
	capturedPoints := current.ApplyCaptures(p.X, p.Y, color)

	captured := make([]string, 0, len(capturedPoints))
	for _, cp := range capturedPoints {
		captured = append(captured, coords.SGF(cp))
	}

	newSGF := AppendMoveToSgf(sgfText, move)
	if err := g.store.SaveSGF(gameKeySecret, newSGF); err != nil {
		return game.MoveResult{}, err
	}

	return game.MoveResult{Accepted: true, Captured: captured, SGF: newSGF}, nil
}

// ReplayMainLine rebuilds the position from a move list. It returns
// the current board and the snapshot immediately preceding the last
// played stone, which is exactly what the simple-ko check needs for
// the next move. Each historical move is re-validated; a record with
// an illegal move is corrupt and replay fails rather than guessing.
func ReplayMainLine(moves []game.Move, size int) (current *board.Board, previous *board.Board, err error) {
	current = board.New(size)
	for i, m := range moves {
		p, err := coords.ParseSGF(m.Coordinates, size)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if p == coords.Pass {
			continue
		}
		color, err := ParseColor(m.Color)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if !current.IsLegal(p.X, p.Y, color, previous) {
			return nil, nil, fmt.Errorf("move %d at %s: %w", i+1, m.Coordinates, errors.ErrCorruptRecord)
		}
		previous = current.Clone()
		current.Place(p.X, p.Y, color)
		current.ApplyCaptures(p.X, p.Y, color)
	}
	return current, previous, nil
}

// ParseColor maps the SGF color letter onto the engine's type.
func ParseColor(s string) (board.Color, error) {
	switch s {
	case "B", "b":
		return board.Black, nil
	case "W", "w":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("unknown color %q", s)
}

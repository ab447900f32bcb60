// Package bot generates moves for the automated player. It prefers
// the external evaluation engine and falls back to a local policy
// built on the rules engine when the engine is unavailable.
package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goban/internal/coords"
	"goban/internal/domain"
	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	gameuc "goban/internal/usecase/game"
)

// EngineStore is the external evaluation engine boundary.
type EngineStore interface {
	GenerateMove(ctx context.Context, req domain.BotMoveRequest) (string, error)
}

type BotUseCase struct {
	engine EngineStore
	log    *zap.SugaredLogger
}

func NewBotUseCase(engine EngineStore, log *zap.SugaredLogger) *BotUseCase {
	return &BotUseCase{engine: engine, log: log}
}

// GenerateMove produces the bot's move for color given the current
// record. When the evaluation engine fails or is absent, the fallback
// takes the first legal point that is not one of the bot's own
// protected eyes (filling those only destroys its own groups) and
// passes when nothing sensible remains.
func (b *BotUseCase) GenerateMove(ctx context.Context, sgfText string, colorLetter string) (game.Move, error) {
	parsed, err := gameuc.ParseSGF(sgfText)
	if err != nil {
		return game.Move{}, err
	}
	size := gameuc.BoardSizeFromSGF(parsed)

	if b.engine != nil {
		engineMove, err := b.engine.GenerateMove(ctx, domain.BotMoveRequest{
			BoardSize: size,
			Komi:      komiFromSGF(parsed),
			Color:     colorLetter,
			SGF:       sgfText,
			Moves:     EngineMoves(gameuc.MainLineMoves(parsed), size),
		})
		if err == nil {
			p, perr := coords.ParseGTP(engineMove, size)
			if perr == nil {
				return game.Move{Color: colorLetter, Coordinates: coords.SGF(p)}, nil
			}
			b.log.Warnw("engine returned unparsable move, falling back", "move", engineMove, "error", perr)
		} else {
			b.log.Warnw("evaluation engine unavailable, falling back", "error", err)
		}
	}

	color, err := gameuc.ParseColor(colorLetter)
	if err != nil {
		return game.Move{}, err
	}

	current, previous, err := gameuc.ReplayMainLine(gameuc.MainLineMoves(parsed), size)
	if err != nil {
		return game.Move{}, err
	}

	for _, p := range current.LegalMoves(color, previous) {
		if current.IsProtectedPoint(p.X, p.Y, color) {
			continue
		}
		return game.Move{Color: colorLetter, Coordinates: coords.SGF(p)}, nil
	}

	// Nothing left but own eyes: pass.
	return game.Move{Color: colorLetter, Coordinates: ""}, nil
}

// EngineMoves rewrites the main line into the engine's notation:
// [["B","D4"], ["W","Q16"], ...], passes included.
func EngineMoves(moves []game.Move, size int) [][2]string {
	out := make([][2]string, 0, len(moves))
	for _, m := range moves {
		if m.Coordinates == "" {
			out = append(out, [2]string{m.Color, "pass"})
			continue
		}
		p, err := coords.ParseSGF(m.Coordinates, size)
		if err != nil {
			continue
		}
		out = append(out, [2]string{m.Color, coords.GTP(p, size)})
	}
	return out
}

func komiFromSGF(parsed *sgf.SGF) float64 {
	if len(parsed.Root.Nodes) == 0 {
		return 0
	}
	v, ok := parsed.Root.Nodes[0].Properties["KM"]
	if !ok || len(v) == 0 {
		return 0
	}
	var komi float64
	fmt.Sscanf(v[0], "%f", &komi)
	return komi
}

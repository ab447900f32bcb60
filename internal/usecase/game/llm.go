package game

import (
	"context"
	"fmt"
	"strings"

	"goban/internal/coords"
)

type LlmStore interface {
	SendRequestToLlm(request string) (response string, err error)
}

// ExplainMove asks the teaching assistant to comment on one move of a
// record. The first and last couple of moves carry no instructive
// value, so they are refused up front.
func (g *GameUseCase) ExplainMove(ctx context.Context, sgfText string, moveSeqNumber int) (string, error) {
	parsed, err := ParseSGF(sgfText)
	if err != nil {
		return "", err
	}
	size := BoardSizeFromSGF(parsed)
	moves := MainLineMoves(parsed)

	if moveSeqNumber < 3 || moveSeqNumber >= len(moves)-3 {
		return "", fmt.Errorf("cannot explain the first or last three moves of a game")
	}

	display := func(from, to int) (string, error) {
		var sB strings.Builder
		for i := from; i < to && i < len(moves); i++ {
			p, err := coords.ParseSGF(moves[i].Coordinates, size)
			if err != nil {
				return "", err
			}
			sB.WriteString(coords.GTP(p, size))
			sB.WriteString(" ")
		}
		return sB.String(), nil
	}

	prevMoves, err := display(0, moveSeqNumber)
	if err != nil {
		return "", err
	}
	p, err := coords.ParseSGF(moves[moveSeqNumber].Coordinates, size)
	if err != nil {
		return "", err
	}
	currentMove := coords.GTP(p, size)
	nextMoves, err := display(moveSeqNumber+1, moveSeqNumber+3)
	if err != nil {
		return "", err
	}

	req := fmt.Sprintf("Sequence of moves: %s\nCurrent move: %s\nNext moves: %s\n", prevMoves, currentMove, nextMoves)
	return g.llm.SendRequestToLlm(req)
}

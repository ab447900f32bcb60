package library

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"goban/internal/coords"
	gameuc "goban/internal/usecase/game"
)

// ExportKifu renders a library record as a printable PDF: a header
// with the game facts, the numbered move list in display notation and
// a diagram of the final position.
func (l *LibraryUseCase) ExportKifu(ctx context.Context, owner, id string) ([]byte, error) {
	rec, err := l.store.GetRecordByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	parsed, err := gameuc.ParseSGF(rec.SGF)
	if err != nil {
		return nil, fmt.Errorf("stored record is not valid SGF: %w", err)
	}
	size := gameuc.BoardSizeFromSGF(parsed)
	moves := gameuc.MainLineMoves(parsed)

	final, _, err := gameuc.ReplayMainLine(moves, size)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, rec.Name)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Black: %s   White: %s", rec.PlayerBlack, rec.PlayerWhite))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Board: %dx%d   Komi: %.1f", size, size, rec.Komi))
	pdf.Ln(8)

	pdf.SetFont("Courier", "", 9)
	var line strings.Builder
	for i, m := range moves {
		p, err := coords.ParseSGF(m.Coordinates, size)
		if err != nil {
			return nil, err
		}
		line.WriteString(fmt.Sprintf("%3d. %s %-5s ", i+1, m.Color, coords.GTP(p, size)))
		if (i+1)%5 == 0 {
			pdf.Cell(0, 4, line.String())
			pdf.Ln(4)
			line.Reset()
		}
	}
	if line.Len() > 0 {
		pdf.Cell(0, 4, line.String())
		pdf.Ln(4)
	}
	pdf.Ln(6)

	pdf.SetFont("Courier", "", 8)
	for _, row := range strings.Split(strings.TrimRight(final.String(), "\n"), "\n") {
		pdf.Cell(0, 3.5, row)
		pdf.Ln(3.5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render kifu: %w", err)
	}
	return buf.Bytes(), nil
}

// Package library manages the saved-game library: records organized
// into a folder hierarchy, plus SGF import and kifu export.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goban/internal/domain/record"
	gameuc "goban/internal/usecase/game"
)

type RecordStore interface {
	SaveRecord(ctx context.Context, rec record.Record) (string, error)
	GetRecordByID(ctx context.Context, owner, id string) (record.Record, error)
	DeleteRecord(ctx context.Context, owner, id string) error
	ListRecords(ctx context.Context, owner, folder string, pageNum int) (record.Page, error)
	ListFolders(ctx context.Context, owner string) ([]string, error)
}

type LibraryUseCase struct {
	store RecordStore
}

func NewLibraryUseCase(store RecordStore) *LibraryUseCase {
	return &LibraryUseCase{store: store}
}

// NormalizeFolder canonicalizes a folder path: always absolute, "/"
// separated, no trailing slash, "/" for the root.
func NormalizeFolder(folder string) string {
	parts := strings.FieldsFunc(folder, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

func (l *LibraryUseCase) SaveRecord(ctx context.Context, rec record.Record) (string, error) {
	if rec.Name == "" {
		return "", fmt.Errorf("record needs a name")
	}
	if _, err := gameuc.ParseSGF(rec.SGF); err != nil {
		return "", fmt.Errorf("record is not valid SGF: %w", err)
	}
	rec.Folder = NormalizeFolder(rec.Folder)
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return l.store.SaveRecord(ctx, rec)
}

// ImportSGF parses an uploaded SGF text and files it into the library,
// lifting board size, komi and player names out of the root node.
func (l *LibraryUseCase) ImportSGF(ctx context.Context, owner, folder, name, sgfText string) (string, error) {
	parsed, err := gameuc.ParseSGF(sgfText)
	if err != nil {
		return "", fmt.Errorf("failed to parse SGF: %w", err)
	}

	rec := record.Record{
		Owner:     owner,
		Folder:    NormalizeFolder(folder),
		Name:      name,
		SGF:       sgfText,
		BoardSize: gameuc.BoardSizeFromSGF(parsed),
	}

	if len(parsed.Root.Nodes) > 0 {
		props := parsed.Root.Nodes[0].Properties
		if v, ok := props["PB"]; ok && len(v) > 0 {
			rec.PlayerBlack = v[0]
		}
		if v, ok := props["PW"]; ok && len(v) > 0 {
			rec.PlayerWhite = v[0]
		}
		if v, ok := props["KM"]; ok && len(v) > 0 {
			fmt.Sscanf(v[0], "%f", &rec.Komi)
		}
	}

	if rec.Name == "" {
		rec.Name = fmt.Sprintf("%s vs %s", rec.PlayerBlack, rec.PlayerWhite)
	}

	return l.SaveRecord(ctx, rec)
}

func (l *LibraryUseCase) GetRecordByID(ctx context.Context, owner, id string) (record.Record, error) {
	return l.store.GetRecordByID(ctx, owner, id)
}

func (l *LibraryUseCase) DeleteRecord(ctx context.Context, owner, id string) error {
	return l.store.DeleteRecord(ctx, owner, id)
}

func (l *LibraryUseCase) ListRecords(ctx context.Context, owner, folder string, pageNum int) (record.Page, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	return l.store.ListRecords(ctx, owner, NormalizeFolder(folder), pageNum)
}

// ListFolders returns every folder that holds at least one record,
// with all intermediate folders filled in so the client can render a
// tree.
func (l *LibraryUseCase) ListFolders(ctx context.Context, owner string) ([]string, error) {
	folders, err := l.store.ListFolders(ctx, owner)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var retVal []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			retVal = append(retVal, f)
		}
	}
	add("/")
	for _, f := range folders {
		f = NormalizeFolder(f)
		parts := strings.Split(strings.TrimPrefix(f, "/"), "/")
		for i := range parts {
			if parts[i] == "" {
				continue
			}
			add("/" + strings.Join(parts[:i+1], "/"))
		}
	}
	return retVal, nil
}

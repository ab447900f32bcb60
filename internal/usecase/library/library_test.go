package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goban/internal/domain/record"
)

type fakeRecordStore struct {
	records map[string]record.Record
	nextID  int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]record.Record)}
}

func (f *fakeRecordStore) SaveRecord(_ context.Context, rec record.Record) (string, error) {
	if rec.ID == "" {
		f.nextID++
		rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	f.records[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeRecordStore) GetRecordByID(_ context.Context, owner, id string) (record.Record, error) {
	rec, ok := f.records[id]
	if !ok || rec.Owner != owner {
		return record.Record{}, fmt.Errorf("record %s not found", id)
	}
	return rec, nil
}

func (f *fakeRecordStore) DeleteRecord(_ context.Context, owner, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeRecordStore) ListRecords(_ context.Context, owner, folder string, pageNum int) (record.Page, error) {
	var page record.Page
	for _, rec := range f.records {
		if rec.Owner == owner && rec.Folder == folder {
			page.Records = append(page.Records, rec)
		}
	}
	page.PageNum = pageNum
	page.Total = int64(len(page.Records))
	return page, nil
}

func (f *fakeRecordStore) ListFolders(_ context.Context, owner string) ([]string, error) {
	seen := make(map[string]bool)
	var folders []string
	for _, rec := range f.records {
		if rec.Owner == owner && !seen[rec.Folder] {
			seen[rec.Folder] = true
			folders = append(folders, rec.Folder)
		}
	}
	return folders, nil
}

func TestNormalizeFolder(t *testing.T) {
	assert.Equal(t, "/", NormalizeFolder(""))
	assert.Equal(t, "/", NormalizeFolder("/"))
	assert.Equal(t, "/study", NormalizeFolder("study"))
	assert.Equal(t, "/study/joseki", NormalizeFolder("/study/joseki/"))
	assert.Equal(t, "/a/b", NormalizeFolder("//a//b"))
}

func TestSaveRecordValidatesSGF(t *testing.T) {
	uc := NewLibraryUseCase(newFakeRecordStore())

	_, err := uc.SaveRecord(context.Background(), record.Record{
		Owner: "alice", Name: "broken", SGF: "(;B[dd",
	})
	assert.Error(t, err)

	_, err = uc.SaveRecord(context.Background(), record.Record{
		Owner: "alice", SGF: "(;FF[4]SZ[9])",
	})
	assert.Error(t, err, "nameless records are refused")
}

func TestImportSGFLiftsMetadata(t *testing.T) {
	store := newFakeRecordStore()
	uc := NewLibraryUseCase(store)

	id, err := uc.ImportSGF(context.Background(), "alice", "study/pro-games", "",
		"(;FF[4]GM[1]SZ[19]PB[Shusaku]PW[Gennan Inseki]KM[0.0];B[qd];W[dc])")
	require.NoError(t, err)

	rec, err := uc.GetRecordByID(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "/study/pro-games", rec.Folder)
	assert.Equal(t, 19, rec.BoardSize)
	assert.Equal(t, "Shusaku", rec.PlayerBlack)
	assert.Equal(t, "Gennan Inseki", rec.PlayerWhite)
	assert.Equal(t, "Shusaku vs Gennan Inseki", rec.Name)
}

func TestListFoldersFillsIntermediate(t *testing.T) {
	store := newFakeRecordStore()
	uc := NewLibraryUseCase(store)

	_, err := uc.SaveRecord(context.Background(), record.Record{
		Owner: "alice", Name: "g1", Folder: "study/joseki/modern", SGF: "(;FF[4]SZ[19])",
	})
	require.NoError(t, err)

	folders, err := uc.ListFolders(context.Background(), "alice")
	require.NoError(t, err)
	assert.Contains(t, folders, "/")
	assert.Contains(t, folders, "/study")
	assert.Contains(t, folders, "/study/joseki")
	assert.Contains(t, folders, "/study/joseki/modern")
}

func TestExportKifuProducesPDF(t *testing.T) {
	store := newFakeRecordStore()
	uc := NewLibraryUseCase(store)

	id, err := uc.ImportSGF(context.Background(), "alice", "", "capture game",
		"(;FF[4]GM[1]SZ[9]PB[alice]PW[bob]KM[6.5];B[de];W[ee];B[fe];W[];B[ed];W[];B[ef])")
	require.NoError(t, err)

	pdfBytes, err := uc.ExportKifu(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 0)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

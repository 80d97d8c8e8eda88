package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data.json"))
}

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.Load())
}

func TestLoadMalformedFileReturnsEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	assert.Empty(t, s.Load())
}

func TestSaveMergePreservesSiblingKeys(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(MaintInfoKey, &Entry{Title: "maintenance", EndStamp: 100}))
	require.NoError(t, s.Put(PLLInfoKey, &Entry{Title: "letter live", ExpireStamp: 200}))

	doc := s.Load()
	assert.Contains(t, doc, MaintInfoKey)
	assert.Contains(t, doc, PLLInfoKey)

	assert.Equal(t, "maintenance", s.Get(MaintInfoKey).Title)
	assert.Equal(t, "letter live", s.Get(PLLInfoKey).Title)
}

func TestSavePreservesUnknownSiblingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	seed := []byte(`{"WTINFO": {"url": "https://example.com/invite"}, "FUTURE_KEY": {"anything": true}}`)
	require.NoError(t, os.WriteFile(path, seed, 0o644))

	s := NewStore(path)
	require.NoError(t, s.Put(MaintInfoKey, &Entry{Title: "maintenance", EndStamp: 100}))

	doc := s.Load()
	assert.Contains(t, doc, "FUTURE_KEY")

	link, ok := s.GetLink(WTInfoKey)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/invite", link)
}

func TestPutOverwritesSameKey(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(MaintInfoKey, &Entry{ID: "1", Title: "old"}))
	require.NoError(t, s.Put(MaintInfoKey, &Entry{ID: "2", Title: "new"}))

	got := s.Get(MaintInfoKey)
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, "new", got.Title)
}

func TestGetMalformedEntryReturnsNil(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Document{MaintInfoKey: json.RawMessage(`"not an object"`)}))

	assert.Nil(t, s.Get(MaintInfoKey))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "data.json"))
	require.NoError(t, s.Put(MaintInfoKey, &Entry{Title: "x", EndStamp: 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Document maps cache-entry names to their serialized records. Values stay raw
// so sibling keys written by other tools (or older bot versions) survive a
// save untouched.
type Document map[string]json.RawMessage

// Store persists the shared cache document as a single JSON file.
type Store struct {
	path string

	// selfWrites counts renames issued by Save that the file watcher has not
	// yet observed, so only external edits reach its callback.
	mu         sync.Mutex
	selfWrites int
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cache document. A missing file, unreadable content or
// malformed structure all yield an empty document; staleness only costs an
// extra upstream fetch.
func (s *Store) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("cache load failed: %v", err)
		}
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Debugf("cache document malformed, starting empty: %v", err)
		return Document{}
	}
	return doc
}

// Get decodes the named entry, or returns nil when it is absent or malformed.
func (s *Store) Get(key string) *Entry {
	raw, ok := s.Load()[key]
	if !ok {
		return nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Debugf("cache entry %s malformed: %v", key, err)
		return nil
	}
	return &e
}

// Put merges the named entry over the current document and writes it back.
func (s *Store) Put(key string, e *Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal cache entry")
	}
	return s.Save(Document{key: raw})
}

// Save shallow-merges the partial document's top-level keys over what is on
// disk and writes the result via temp-then-rename, so a crash mid-write leaves
// either the old or the new content intact.
func (s *Store) Save(partial Document) error {
	doc := s.Load()
	for k, v := range partial {
		doc[k] = v
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal cache document")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create cache dir")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(payload); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "replace cache file")
	}
	s.noteSelfWrite()
	return nil
}

func (s *Store) noteSelfWrite() {
	s.mu.Lock()
	s.selfWrites++
	s.mu.Unlock()
}

func (s *Store) consumeSelfWrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selfWrites == 0 {
		return false
	}
	s.selfWrites--
	return true
}

// GetLink returns the named entry's URL field, for link-only keys like the
// invite link.
func (s *Store) GetLink(key string) (string, bool) {
	e := s.Get(key)
	if e == nil || e.URL == "" {
		return "", false
	}
	return e.URL, true
}

package store

import (
	"encoding/json"
	"errors"

	"github.com/fegodi/homekeep/internal/model"
)

// ExportVersion is stamped into export documents. Import does not
// check it; older documents simply lack fields that default on load.
const ExportVersion = "2.0"

var (
	// ErrUnreadable means the document is not parseable JSON at all.
	ErrUnreadable = errors.New("could not read file")
	// ErrInvalidFormat means the document parsed but lacks a tasks array.
	ErrInvalidFormat = errors.New("invalid format")
)

type exportDoc struct {
	Version string       `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// Export serializes the full collection as a portable document, using
// the same per-task representation as persistence.
func (s *Store) Export() ([]byte, error) {
	doc := exportDoc{Version: ExportVersion, Tasks: s.List()}
	return json.MarshalIndent(doc, "", "  ")
}

// Import replaces the entire collection with the document's tasks.
// Both failure modes are recoverable and leave the store untouched.
// The undo history is dropped: its records describe tasks the import
// just replaced.
func (s *Store) Import(data []byte) (int, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		if json.Valid(data) {
			// Parseable JSON of the wrong shape (a bare array, a
			// string) is a format problem, not a read problem.
			return 0, ErrInvalidFormat
		}
		return 0, ErrUnreadable
	}
	raw, ok := probe["tasks"]
	if !ok {
		return 0, ErrInvalidFormat
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return 0, ErrInvalidFormat
	}

	s.mu.Lock()
	s.replaceLocked(tasks)
	s.undo = nil
	n := len(s.order)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return n, nil
}

// Package store implements CRUD operations over the relevance table file.
// Every mutation is a full-file read/rewrite; there is no partial-line
// patching at this layer. The file is the sole persisted source of truth.
package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/factgraph/factgraph/internal/codec"
	"github.com/factgraph/factgraph/internal/model"
)

// header is written once, when the table file is first created. The table
// stays valid markdown so it can be read and hand-edited as prose.
const header = `---
type: relevance-table
---

| ID | Claim | Relevance |
|---|---|---|
`

// LogFunc receives diagnostics for paths that are deliberately silent toward
// the user, such as mutations that matched no row.
type LogFunc func(format string, args ...interface{})

// Store provides access to one relevance table file. A missing file is not
// an error: reads return empty results and the first mutation creates the
// file with header content.
//
// Concurrent mutation from two callers is a lost-update race; the intended
// usage is single-user, one interactively triggered mutation at a time.
type Store struct {
	fs   afero.Fs
	path string
	logf LogFunc
	now  func() time.Time
}

// New creates a store backed by the file at path. A nil logf discards
// diagnostics.
func New(fs afero.Fs, path string, logf LogFunc) *Store {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Store{
		fs:   fs,
		path: path,
		logf: logf,
		now:  time.Now,
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// CreateRow sanitizes both fields, generates a fresh id and appends one row,
// creating the file with header content if absent. It returns the new id.
func (s *Store) CreateRow(claim, relevance string) (string, error) {
	claim = codec.Sanitize(claim)
	relevance = codec.Sanitize(relevance)

	var items []string
	if relevance != "" {
		items = []string{relevance}
	}

	content, exists, err := s.read()
	if err != nil {
		return "", err
	}

	id := s.freshID(content)
	line := codec.EncodeRow(id, claim, items)

	if !exists {
		if err := afero.WriteFile(s.fs, s.path, []byte(header+line+"\n"), 0644); err != nil {
			return "", fmt.Errorf("create relevance table: %w", err)
		}
		return id, nil
	}

	prefix := ""
	if content != "" && !strings.HasSuffix(content, "\n") {
		prefix = "\n"
	}
	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("open relevance table: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}
	return id, nil
}

// ReadRow scans the table top to bottom for the first row with the given id.
// It reports false when the file or the row is absent, or when the matching
// line cannot be decoded.
func (s *Store) ReadRow(id string) (model.Connection, bool, error) {
	content, exists, err := s.read()
	if err != nil {
		return model.Connection{}, false, err
	}
	if !exists {
		s.logf("store: table %s does not exist, row %s not found", s.path, id)
		return model.Connection{}, false, nil
	}

	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, needle(id)) {
			continue
		}
		conn, ok := codec.DecodeRow(line)
		if !ok {
			s.logf("store: row %s is malformed: %q", id, line)
			return model.Connection{}, false, nil
		}
		return conn, true, nil
	}
	return model.Connection{}, false, nil
}

// AppendItem adds one sanitized relevance item to the end of the matching
// row's item list. Missing file, missing row and text that sanitizes to
// nothing are silent no-ops, reported through the log hook only.
func (s *Store) AppendItem(id, text string) error {
	text = codec.Sanitize(text)
	if text == "" {
		s.logf("store: empty item for row %s, append skipped", id)
		return nil
	}

	content, exists, err := s.read()
	if err != nil {
		return err
	}
	if !exists {
		s.logf("store: table %s does not exist, append to row %s skipped", s.path, id)
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, needle(id)) {
			continue
		}
		conn, ok := codec.DecodeRow(line)
		if !ok {
			break
		}
		lines[i] = codec.AppendToCell(conn, text)
		return s.write(lines)
	}

	s.logf("store: no row %s, append skipped", id)
	return nil
}

// RemoveItem deletes the item at index from the matching row's item list.
// An out-of-range index, a missing file and a missing row are silent no-ops.
func (s *Store) RemoveItem(id string, index int) error {
	content, exists, err := s.read()
	if err != nil {
		return err
	}
	if !exists {
		s.logf("store: table %s does not exist, remove from row %s skipped", s.path, id)
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, needle(id)) {
			continue
		}
		conn, ok := codec.DecodeRow(line)
		if !ok {
			break
		}
		if index < 0 || index >= len(conn.RelevanceItems) {
			s.logf("store: item index %d out of range for row %s, remove skipped", index, id)
			return nil
		}
		items := append([]string(nil), conn.RelevanceItems[:index]...)
		items = append(items, conn.RelevanceItems[index+1:]...)
		lines[i] = codec.EncodeRow(conn.ID, conn.Claim, items)
		return s.write(lines)
	}

	s.logf("store: no row %s, remove skipped", id)
	return nil
}

// DeleteRow removes every line carrying the given id, not just the first,
// as a defence against accidental duplicates. Other lines are preserved
// byte for byte in their original order.
func (s *Store) DeleteRow(id string) error {
	content, exists, err := s.read()
	if err != nil {
		return err
	}
	if !exists {
		s.logf("store: table %s does not exist, delete of row %s skipped", s.path, id)
		return nil
	}

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, needle(id)) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		s.logf("store: no row %s, delete skipped", id)
		return nil
	}
	return s.write(kept)
}

// Rows decodes every data row in the table, in file order. Header lines,
// the separator row and malformed lines are skipped. A missing file yields
// an empty result.
func (s *Store) Rows() ([]model.Connection, error) {
	content, exists, err := s.read()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	var rows []model.Connection
	for _, line := range strings.Split(content, "\n") {
		conn, ok := codec.DecodeRow(line)
		if !ok || !numericID(conn.ID) {
			continue
		}
		rows = append(rows, conn)
	}
	return rows, nil
}

func (s *Store) read() (string, bool, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return "", false, fmt.Errorf("stat relevance table: %w", err)
	}
	if !exists {
		return "", false, nil
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", false, fmt.Errorf("read relevance table: %w", err)
	}
	return string(data), true, nil
}

func (s *Store) write(lines []string) error {
	if err := afero.WriteFile(s.fs, s.path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("write relevance table: %w", err)
	}
	return nil
}

// freshID derives a 6-digit id from the current unix-milli timestamp and
// bumps it until it collides with no existing row.
func (s *Store) freshID(content string) string {
	id := fmt.Sprintf("%06d", s.now().UnixMilli()%1_000_000)
	for strings.Contains(content, needle(id)) {
		n, _ := strconv.Atoi(id)
		id = fmt.Sprintf("%06d", (n+1)%1_000_000)
		s.logf("store: id collision, retrying with %s", id)
	}
	return id
}

// needle is the exact substring that identifies a row line for the given id.
func needle(id string) string {
	return "| " + id + " |"
}

func numericID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

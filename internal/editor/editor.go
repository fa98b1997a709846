// Package editor provides the active-document contract the workflows edit
// through: line access, a cursor and selection replacement. Buffer is the
// CLI's stand-in for a host editor, holding the document as a line slice
// loaded from and saved back to a file.
package editor

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Position is a cursor location: a 0-based line and a 0-based byte offset
// within that line. All buffer coordinates (selections, cursor clamping)
// use byte offsets; rune-aware columns are a display concern.
type Position struct {
	Line int
	Ch   int
}

// selection is a single-line character range awaiting replacement.
type selection struct {
	line int
	from int
	to   int
	set  bool
}

// Buffer is an editable in-memory document.
type Buffer struct {
	fs     afero.Fs
	path   string
	lines  []string
	cursor Position
	sel    selection
}

// Load reads the document at path into a buffer.
func Load(fs afero.Fs, path string) (*Buffer, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return &Buffer{
		fs:    fs,
		path:  path,
		lines: strings.Split(string(data), "\n"),
	}, nil
}

// NewBuffer creates an unbacked buffer from text, for hosts that manage
// persistence themselves.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Save writes the buffer back to its backing file.
func (b *Buffer) Save() error {
	if b.fs == nil {
		return fmt.Errorf("buffer has no backing file")
	}
	if err := afero.WriteFile(b.fs, b.path, []byte(b.Text()), 0644); err != nil {
		return fmt.Errorf("write document %s: %w", b.path, err)
	}
	return nil
}

// Text returns the full document text.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines in the document.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// GetLine returns the text of line i, or the empty string out of bounds.
func (b *Buffer) GetLine(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// SetLine replaces the text of line i. Out-of-bounds indices are ignored.
func (b *Buffer) SetLine(i int, text string) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines[i] = text
}

// GetCursor returns the current cursor position.
func (b *Buffer) GetCursor() Position {
	return b.cursor
}

// SetCursor moves the cursor, clamping it into the document.
func (b *Buffer) SetCursor(pos Position) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(b.lines) {
		pos.Line = len(b.lines) - 1
	}
	if pos.Ch < 0 {
		pos.Ch = 0
	}
	if max := len(b.lines[pos.Line]); pos.Ch > max {
		pos.Ch = max
	}
	b.cursor = pos
}

// SetSelection marks the character range [from, to) on one line as the
// current selection and places the cursor at its start.
func (b *Buffer) SetSelection(line, from, to int) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	text := b.lines[line]
	from = clamp(from, 0, len(text))
	to = clamp(to, from, len(text))
	b.sel = selection{line: line, from: from, to: to, set: true}
	b.cursor = Position{Line: line, Ch: from}
}

// ReplaceSelection replaces the current selection with text and moves the
// cursor to the end of the inserted text. With no selection set, text is
// inserted at the cursor.
func (b *Buffer) ReplaceSelection(text string) {
	line, from, to := b.cursor.Line, b.cursor.Ch, b.cursor.Ch
	if b.sel.set {
		line, from, to = b.sel.line, b.sel.from, b.sel.to
		b.sel = selection{}
	}
	if line < 0 || line >= len(b.lines) {
		return
	}
	old := b.lines[line]
	from = clamp(from, 0, len(old))
	to = clamp(to, from, len(old))
	b.lines[line] = old[:from] + text + old[to:]
	b.cursor = Position{Line: line, Ch: from + len(text)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package claims reads the claims document: a markdown file whose top-level
// `- ` bulleted lines are the claims a user can link relevance notes to.
// Claims are read-only and re-parsed on every request; they have no stable
// ids and are identified by their text alone.
package claims

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/factgraph/factgraph/internal/model"
)

// Source reads claims from one markdown document.
type Source struct {
	fs     afero.Fs
	path   string
	parser goldmark.Markdown
}

// NewSource creates a claims source backed by the file at path.
func NewSource(fs afero.Fs, path string) *Source {
	return &Source{
		fs:     fs,
		path:   path,
		parser: goldmark.New(),
	}
}

// Path returns the location of the claims document.
func (s *Source) Path() string {
	return s.path
}

// List parses the document and returns its claims in document order. Only
// top-level list items with a `-` bullet count; everything else in the
// document is ignored. A missing claims document is an error: the create
// flow cannot proceed without one.
func (s *Source) List() ([]model.Claim, error) {
	src, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read claims document %s: %w", s.path, err)
	}

	doc := s.parser.Parser().Parse(gtext.NewReader(src))

	var claims []model.Claim
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		list, ok := node.(*ast.List)
		if !ok || list.Marker != '-' {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			text, offset := itemText(item, src)
			if text == "" {
				continue
			}
			claims = append(claims, model.Claim{
				Text: text,
				Line: lineOf(src, offset),
			})
		}
	}
	return claims, nil
}

// itemText extracts the text of a list item's first block, skipping any
// nested sublists, and returns it with the source offset of its first
// segment.
func itemText(item ast.Node, src []byte) (string, int) {
	block := item.FirstChild()
	if block == nil {
		return "", 0
	}

	offset := -1
	var buf strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			if offset < 0 {
				offset = v.Segment.Start
			}
			buf.Write(v.Segment.Value(src))
			// Goldmark emits one Text node per source line; rejoin
			// continuation lines with the space the break stood for.
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	if offset < 0 {
		offset = 0
	}
	return strings.TrimSpace(buf.String()), offset
}

// lineOf converts a byte offset into a 0-based line index.
func lineOf(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	line := 0
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}

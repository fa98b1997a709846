// Package codec owns the serialization of relevance rows. All knowledge of
// the pipe-delimited table line format and its escaping rules lives here, so
// the storage representation can be swapped without touching callers.
package codec

import (
	"fmt"
	"strings"

	"github.com/factgraph/factgraph/internal/model"
)

const (
	// columnDelimiter separates table columns. Sanitize guarantees it never
	// appears inside a field.
	columnDelimiter = "|"

	// ItemSeparator joins relevance items inside the single relevance cell.
	// It is a multi-character token distinct from the column delimiter and
	// renders as a line break when the table is viewed as markdown. The
	// codec does not verify at encode time that items avoid this token;
	// a collision with sanitized user text is a documented limitation.
	ItemSeparator = "<br>"
)

// Sanitize makes user-supplied text safe to embed in a table row: column
// delimiters become hyphens, newlines become spaces, and surrounding
// whitespace is trimmed. Sanitize is total and idempotent.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, columnDelimiter, "-")
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// EncodeRow produces one table line for the given id, claim and relevance
// items. An empty item sequence yields an empty relevance cell. Inputs are
// expected to be sanitized already.
func EncodeRow(id, claim string, items []string) string {
	cell := strings.Join(items, " "+ItemSeparator+" ")
	return fmt.Sprintf("| %s | %s | %s |", id, claim, cell)
}

// DecodeRow parses one table line back into a connection. A pipe-wrapped
// data row `| id | claim | cell |` splits into five parts (the leading and
// trailing delimiters contribute empty ones); anything shorter, such as a
// hand-truncated two-column line, is rejected rather than decoded with a
// missing cell. Empty or whitespace-only relevance items are dropped.
func DecodeRow(line string) (model.Connection, bool) {
	parts := strings.Split(line, columnDelimiter)
	if len(parts) < 5 {
		return model.Connection{}, false
	}

	conn := model.Connection{
		ID:    strings.TrimSpace(parts[1]),
		Claim: strings.TrimSpace(parts[2]),
	}

	cell := strings.TrimSpace(parts[3])
	if cell != "" {
		for _, item := range strings.Split(cell, ItemSeparator) {
			item = strings.TrimSpace(item)
			if item != "" {
				conn.RelevanceItems = append(conn.RelevanceItems, item)
			}
		}
	}

	return conn, true
}

// AppendToCell re-encodes a row with text appended after its existing items.
func AppendToCell(conn model.Connection, text string) string {
	items := append(append([]string(nil), conn.RelevanceItems...), text)
	return EncodeRow(conn.ID, conn.Claim, items)
}

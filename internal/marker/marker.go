// Package marker finds, renders and strips the inline (fg:<id>) tokens that
// bind a point in a document to a relevance row. Scanning is a pure function
// of the buffer and the visible ranges; it performs no I/O.
package marker

import "regexp"

// pattern matches one inline marker and captures its id digits.
var pattern = regexp.MustCompile(`\(fg:(\d+)\)`)

// Match is one discovered marker: its byte span within the scanned buffer
// and the id it carries. Many markers may carry the same id, and an id with
// no corresponding row is a valid, displayable dangling state.
type Match struct {
	Start int
	End   int
	ID    string
}

// Range is one visible sub-range of a buffer, in byte offsets. Ranges are an
// optimization boundary supplied by the host, assumed disjoint; a marker
// straddling a range edge is not reported.
type Range struct {
	Start int
	End   int
}

// Scan returns the non-overlapping leftmost marker matches within the given
// ranges, in offset order per range. With no ranges it scans the whole
// buffer. The result is recomputed fully on every call; adjacent markers
// are matched back to back, each scan resuming immediately after the
// previous match.
func Scan(text string, visible ...Range) []Match {
	if len(visible) == 0 {
		visible = []Range{{Start: 0, End: len(text)}}
	}

	var matches []Match
	for _, r := range visible {
		start := clamp(r.Start, 0, len(text))
		end := clamp(r.End, start, len(text))
		for _, idx := range pattern.FindAllStringSubmatchIndex(text[start:end], -1) {
			matches = append(matches, Match{
				Start: start + idx[0],
				End:   start + idx[1],
				ID:    text[start+idx[2] : start+idx[3]],
			})
		}
	}
	return matches
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

// Text renders the literal marker token for an id, as inserted into prose.
func Text(id string) string {
	return "(fg:" + id + ")"
}

// StripFromLine removes the first marker for the given id from the line,
// together with any immediately preceding run of horizontal whitespace. It
// reports whether a marker was removed; other occurrences on the same line
// are left untouched.
func StripFromLine(line, id string) (string, bool) {
	re := regexp.MustCompile(`[ \t]*` + regexp.QuoteMeta(Text(id)))
	loc := re.FindStringIndex(line)
	if loc == nil {
		return line, false
	}
	return line[:loc[0]] + line[loc[1]:], true
}

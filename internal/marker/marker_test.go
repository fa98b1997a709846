package marker

import (
	"reflect"
	"testing"
)

func TestScan_AdjacentMarkers(t *testing.T) {
	text := "start (fg:123)(fg:456) end"

	matches := Scan(text)
	want := []Match{
		{Start: 6, End: 14, ID: "123"},
		{Start: 14, End: 22, ID: "456"},
	}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("Scan = %+v, want %+v", matches, want)
	}
}

func TestScan_NoMarkers(t *testing.T) {
	tests := []string{
		"",
		"plain prose",
		"(fg:)",        // no digits
		"(fg:12a)",     // non-digit id
		"fg:123)",      // no opening paren
		"(FG:123)",     // wrong case
	}
	for _, text := range tests {
		if got := Scan(text); len(got) != 0 {
			t.Errorf("Scan(%q) = %+v, want none", text, got)
		}
	}
}

func TestScan_VisibleRanges(t *testing.T) {
	text := "(fg:111) middle (fg:222) tail (fg:333)"

	// Only the middle marker is inside the visible range.
	matches := Scan(text, Range{Start: 8, End: 30})
	if len(matches) != 1 || matches[0].ID != "222" {
		t.Fatalf("Scan = %+v, want single match 222", matches)
	}
	if text[matches[0].Start:matches[0].End] != "(fg:222)" {
		t.Errorf("span %d:%d does not cover the marker", matches[0].Start, matches[0].End)
	}

	// Two disjoint ranges yield both their markers.
	matches = Scan(text, Range{Start: 0, End: 8}, Range{Start: 30, End: len(text)})
	if len(matches) != 2 || matches[0].ID != "111" || matches[1].ID != "333" {
		t.Errorf("Scan = %+v, want 111 and 333", matches)
	}
}

func TestScan_ClampsOutOfBoundsRanges(t *testing.T) {
	text := "x (fg:123)"
	matches := Scan(text, Range{Start: -5, End: 999})
	if len(matches) != 1 || matches[0].ID != "123" {
		t.Errorf("Scan = %+v, want single match 123", matches)
	}
}

func TestScan_MarkerStraddlingRangeEdgeNotReported(t *testing.T) {
	text := "ab (fg:123) cd"
	matches := Scan(text, Range{Start: 0, End: 7})
	if len(matches) != 0 {
		t.Errorf("Scan = %+v, want none for a straddled marker", matches)
	}
}

func TestText(t *testing.T) {
	if got := Text("123456"); got != "(fg:123456)" {
		t.Errorf("Text = %q", got)
	}
}

func TestStripFromLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		id      string
		want    string
		removed bool
	}{
		{"leading whitespace removed", "  text (fg:123) more", "123", "  text more", true},
		{"marker at line start", "(fg:123) text", "123", " text", true},
		{"tabs before marker", "text\t(fg:123)", "123", "text", true},
		{"only first occurrence", "a (fg:123) b (fg:123)", "123", "a b (fg:123)", true},
		{"different id untouched", "text (fg:456)", "123", "text (fg:456)", false},
		{"no marker", "plain text", "123", "plain text", false},
		{"id is a prefix of another", "text (fg:1234)", "123", "text (fg:1234)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := StripFromLine(tt.line, tt.id)
			if got != tt.want || removed != tt.removed {
				t.Errorf("StripFromLine(%q, %s) = %q, %v; want %q, %v",
					tt.line, tt.id, got, removed, tt.want, tt.removed)
			}
		})
	}
}

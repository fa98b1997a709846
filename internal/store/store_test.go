package store

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func newTestStore(t *testing.T) (*Store, afero.Fs, *[]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	var logs []string
	st := New(fs, "Relevance.md", func(format string, args ...interface{}) {
		logs = append(logs, format)
	})
	return st, fs, &logs
}

func TestCreateRow_CreatesFileWithHeader(t *testing.T) {
	st, fs, _ := newTestStore(t)

	id, err := st.CreateRow("Claim A", "Reason 1")
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}
	if len(id) != 6 {
		t.Errorf("expected 6-digit id, got %q", id)
	}

	data, err := afero.ReadFile(fs, "Relevance.md")
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "| ID | Claim | Relevance |") {
		t.Error("missing column header")
	}
	if !strings.Contains(content, "|---|---|---|") {
		t.Error("missing separator row")
	}
	if !strings.HasPrefix(content, "---\n") {
		t.Error("missing front-matter block")
	}

	dataRows := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "| "+id+" |") {
			dataRows++
		}
	}
	if dataRows != 1 {
		t.Errorf("expected exactly one data row, found %d", dataRows)
	}

	conn, ok, err := st.ReadRow(id)
	if err != nil || !ok {
		t.Fatalf("ReadRow(%s) = ok=%v err=%v", id, ok, err)
	}
	if conn.Claim != "Claim A" {
		t.Errorf("claim = %q, want %q", conn.Claim, "Claim A")
	}
	if !reflect.DeepEqual(conn.RelevanceItems, []string{"Reason 1"}) {
		t.Errorf("items = %v, want [Reason 1]", conn.RelevanceItems)
	}
}

func TestCreateRow_SanitizesFields(t *testing.T) {
	st, _, _ := newTestStore(t)

	id, err := st.CreateRow(" either|or \n claim ", "line1\nline2")
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}

	conn, ok, _ := st.ReadRow(id)
	if !ok {
		t.Fatal("row not found")
	}
	if strings.Contains(conn.Claim, "|") || strings.Contains(conn.Claim, "\n") {
		t.Errorf("claim not sanitized: %q", conn.Claim)
	}
	if conn.Claim != "either-or   claim" {
		t.Errorf("claim = %q", conn.Claim)
	}
	if len(conn.RelevanceItems) != 1 || strings.Contains(conn.RelevanceItems[0], "\n") {
		t.Errorf("items not sanitized: %v", conn.RelevanceItems)
	}
}

func TestCreateRow_IDCollisionBumps(t *testing.T) {
	st, _, logs := newTestStore(t)
	fixed := time.UnixMilli(1_700_000_123_456)
	st.now = func() time.Time { return fixed }

	first, err := st.CreateRow("Claim A", "a")
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}
	second, err := st.CreateRow("Claim B", "b")
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}

	if first == second {
		t.Fatalf("collision not resolved, both ids %s", first)
	}
	if first != "123456" || second != "123457" {
		t.Errorf("ids = %s, %s, want 123456, 123457", first, second)
	}
	if len(*logs) == 0 {
		t.Error("expected a collision diagnostic")
	}
}

func TestReadRow_MissingFileOrRow(t *testing.T) {
	st, _, _ := newTestStore(t)

	if _, ok, err := st.ReadRow("123456"); ok || err != nil {
		t.Errorf("ReadRow on missing file: ok=%v err=%v, want false, nil", ok, err)
	}

	if _, err := st.CreateRow("Claim A", "a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := st.ReadRow("999999"); ok || err != nil {
		t.Errorf("ReadRow on missing row: ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestAppendItem_PreservesOrder(t *testing.T) {
	st, _, _ := newTestStore(t)

	id, _ := st.CreateRow("Claim A", "Reason 1")
	if err := st.AppendItem(id, "Reason 2"); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if err := st.AppendItem(id, "Reason 3"); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}

	conn, ok, _ := st.ReadRow(id)
	if !ok {
		t.Fatal("row not found")
	}
	want := []string{"Reason 1", "Reason 2", "Reason 3"}
	if !reflect.DeepEqual(conn.RelevanceItems, want) {
		t.Errorf("items = %v, want %v", conn.RelevanceItems, want)
	}
}

func TestAppendItem_NoOps(t *testing.T) {
	st, fs, logs := newTestStore(t)

	// Missing file: no-op, must not create the table.
	if err := st.AppendItem("123456", "text"); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	if exists, _ := afero.Exists(fs, "Relevance.md"); exists {
		t.Error("append on missing file created the table")
	}
	if len(*logs) == 0 {
		t.Error("expected a diagnostic for the missing-file no-op")
	}

	// Missing row: no-op, table unchanged.
	id, _ := st.CreateRow("Claim A", "a")
	before, _ := afero.ReadFile(fs, "Relevance.md")
	if err := st.AppendItem("999999", "text"); err != nil {
		t.Fatalf("AppendItem: %v", err)
	}
	after, _ := afero.ReadFile(fs, "Relevance.md")
	if string(before) != string(after) {
		t.Error("append for a missing row changed the table")
	}

	conn, _, _ := st.ReadRow(id)
	if len(conn.RelevanceItems) != 1 {
		t.Errorf("existing row modified: %v", conn.RelevanceItems)
	}
}

func TestRemoveItem(t *testing.T) {
	st, _, logs := newTestStore(t)

	id, _ := st.CreateRow("Claim A", "a")
	_ = st.AppendItem(id, "b")
	_ = st.AppendItem(id, "c")

	if err := st.RemoveItem(id, 0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	conn, _, _ := st.ReadRow(id)
	if !reflect.DeepEqual(conn.RelevanceItems, []string{"b", "c"}) {
		t.Errorf("items = %v, want [b c]", conn.RelevanceItems)
	}

	// Out-of-range index is a silent no-op.
	*logs = (*logs)[:0]
	if err := st.RemoveItem(id, 5); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	conn, _, _ = st.ReadRow(id)
	if !reflect.DeepEqual(conn.RelevanceItems, []string{"b", "c"}) {
		t.Errorf("out-of-range remove changed items: %v", conn.RelevanceItems)
	}
	if len(*logs) == 0 {
		t.Error("expected a diagnostic for the out-of-range no-op")
	}
}

func TestDeleteRow_RemovesAllMatchesKeepsOthers(t *testing.T) {
	st, fs, _ := newTestStore(t)

	keepA, _ := st.CreateRow("Claim A", "a")
	victim, _ := st.CreateRow("Claim B", "b")
	keepB, _ := st.CreateRow("Claim C", "c")

	// Inject a duplicate line for the victim id; delete must remove both.
	data, _ := afero.ReadFile(fs, "Relevance.md")
	dup := string(data) + "| " + victim + " | Claim B again | d |\n"
	if err := afero.WriteFile(fs, "Relevance.md", []byte(dup), 0644); err != nil {
		t.Fatal(err)
	}

	if err := st.DeleteRow(victim); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	data, _ = afero.ReadFile(fs, "Relevance.md")
	content := string(data)
	if strings.Contains(content, "| "+victim+" |") {
		t.Error("victim rows still present")
	}

	idxA := strings.Index(content, "| "+keepA+" |")
	idxB := strings.Index(content, "| "+keepB+" |")
	if idxA < 0 || idxB < 0 {
		t.Fatal("surviving rows missing")
	}
	if idxA > idxB {
		t.Error("surviving rows reordered")
	}
}

func TestRows_SkipsHeaderAndMalformedLines(t *testing.T) {
	st, fs, _ := newTestStore(t)

	idA, _ := st.CreateRow("Claim A", "a")
	idB, _ := st.CreateRow("Claim B", "b")

	// Malformed trailing junk must be skipped, not surfaced.
	data, _ := afero.ReadFile(fs, "Relevance.md")
	junk := string(data) + "not a row at all\n"
	if err := afero.WriteFile(fs, "Relevance.md", []byte(junk), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := st.Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != idA || rows[1].ID != idB {
		t.Errorf("rows out of order: %s, %s", rows[0].ID, rows[1].ID)
	}
}

func TestRows_MissingFile(t *testing.T) {
	st, _, _ := newTestStore(t)
	rows, err := st.Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

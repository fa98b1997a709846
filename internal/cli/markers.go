package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/factgraph/factgraph/internal/marker"
	"github.com/factgraph/factgraph/internal/model"
	"github.com/factgraph/factgraph/internal/store"
)

var (
	markersFrom int
	markersTo   int
)

// markersCmd represents the markers command
var markersCmd = &cobra.Command{
	Use:   "markers <document>",
	Short: "List the inline markers of a document with their connections",
	Long: `Markers scans a document for (fg:<id>) tokens and renders the decoration
set: one line per marker with its position, id and the claim it resolves
to. Markers whose row is missing are flagged as dangling; they are valid
and displayable, just unresolved.

The optional --from/--to byte offsets restrict scanning to a visible range,
the way an editor only decorates its viewport.`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkers,
}

func init() {
	rootCmd.AddCommand(markersCmd)

	markersCmd.Flags().IntVar(&markersFrom, "from", 0, "start byte offset of the visible range")
	markersCmd.Flags().IntVar(&markersTo, "to", -1, "end byte offset of the visible range (-1 means end of document)")
}

func runMarkers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := appFs()

	data, err := afero.ReadFile(fs, args[0])
	if err != nil {
		return fmt.Errorf("read document %s: %w", args[0], err)
	}

	st := newStore(fs, cfg)
	return renderMarkers(cmd.OutOrStdout(), string(data), st, markersFrom, markersTo)
}

// renderMarkers prints the decoration set for one document snapshot.
func renderMarkers(w io.Writer, text string, st *store.Store, from, to int) error {
	var visible []marker.Range
	if from > 0 || to >= 0 {
		end := to
		if end < 0 {
			end = len(text)
		}
		visible = append(visible, marker.Range{Start: from, End: end})
	}

	matches := marker.Scan(text, visible...)
	if len(matches) == 0 {
		fmt.Fprintln(w, "No markers found.")
		return nil
	}

	// One read resolves every id; per-marker reads would rescan the file
	// once per marker.
	rows, err := st.Rows()
	if err != nil {
		return err
	}
	byID := make(map[string]model.Connection, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	for _, m := range matches {
		line, col := position(text, m.Start)
		if conn, ok := byID[m.ID]; ok {
			fmt.Fprintf(w, "%s %s %s (%d items)\n",
				color.New(color.Faint).Sprintf("%d:%d", line+1, col+1),
				color.CyanString(marker.Text(m.ID)),
				conn.Claim,
				len(conn.RelevanceItems))
		} else {
			fmt.Fprintf(w, "%s %s %s\n",
				color.New(color.Faint).Sprintf("%d:%d", line+1, col+1),
				color.CyanString(marker.Text(m.ID)),
				color.RedString("dangling: no matching row"))
		}
	}
	return nil
}

// position converts a byte offset into a 0-based line index and a 0-based
// column counted in runes, so multi-byte text before a marker does not shift
// the displayed column.
func position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = strings.Count(before, "\n")
	start := 0
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		start = i + 1
	}
	col = utf8.RuneCountInString(before[start:])
	return line, col
}

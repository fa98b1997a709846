package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/factgraph/factgraph/internal/editor"
	"github.com/factgraph/factgraph/internal/marker"
	"github.com/factgraph/factgraph/internal/workflow"
)

var (
	linkLine   int
	linkCol    int
	linkEndCol int
	linkClaim  int
	linkText   string
)

// linkCmd represents the link command, the "Link Nuance to Claim" action.
var linkCmd = &cobra.Command{
	Use:   "link <document>",
	Short: "Link a relevance note to a claim at a position in a document",
	Long: `Link creates a new connection: it reads the claims list, prompts for a
claim and free-text relevance, appends one row to the relevance table and
inserts the literal (fg:<id>) marker at the given position, replacing the
selection between --col and --end-col.

Cancelling either prompt leaves the table and the document untouched.

Example:
  factgraph link notes.md --line 12 --col 8
  factgraph link notes.md --line 12 --col 8 --end-col 17 --claim 2 --text "contradicts the survey data"`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().IntVar(&linkLine, "line", 1, "1-based line of the insertion point")
	linkCmd.Flags().IntVar(&linkCol, "col", 1, "1-based column of the insertion point")
	linkCmd.Flags().IntVar(&linkEndCol, "end-col", 0, "1-based column ending the replaced selection (defaults to --col)")
	linkCmd.Flags().IntVar(&linkClaim, "claim", 0, "claim number to link, as shown by 'factgraph claims' (skips the prompt)")
	linkCmd.Flags().StringVar(&linkText, "text", "", "relevance text (skips the prompt)")
}

func runLink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := appFs()

	buf, err := editor.Load(fs, args[0])
	if err != nil {
		return err
	}

	if linkLine < 1 || linkLine > buf.LineCount() {
		return fmt.Errorf("line %d out of range: %s has %d lines", linkLine, args[0], buf.LineCount())
	}
	endCol := linkEndCol
	if endCol < linkCol {
		endCol = linkCol
	}
	buf.SetSelection(linkLine-1, linkCol-1, endCol-1)

	prompter := &terminalPrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		presetClaim: linkClaim,
		presetText:  linkText,
	}
	conn := workflow.NewConnector(newClaims(fs, cfg), newStore(fs, cfg), prompter, stderrNotifier{})

	id, linked, err := conn.Link(buf)
	if err != nil {
		return fmt.Errorf("link failed: %w", err)
	}
	if !linked {
		fmt.Fprintln(os.Stderr, "Cancelled, nothing written.")
		return nil
	}

	if err := buf.Save(); err != nil {
		return err
	}

	fmt.Printf("✓ Inserted %s into %s and appended row %s to %s\n",
		marker.Text(id), args[0], id, cfg.Paths.RelevanceFile)
	return nil
}

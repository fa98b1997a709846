package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/factgraph/factgraph/internal/editor"
	"github.com/factgraph/factgraph/internal/workflow"
)

var unlinkYes bool

// unlinkCmd represents the unlink command
var unlinkCmd = &cobra.Command{
	Use:   "unlink <document> <id>",
	Short: "Delete a connection and strip its marker from a document",
	Long: `Unlink deletes every relevance row carrying the id, then removes the first
(fg:<id>) marker occurrence from the document, together with the run of
whitespace immediately before it. Later occurrences on other lines are left
alone.

Example:
  factgraph unlink notes.md 123456
  factgraph unlink notes.md 123456 --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runUnlink,
}

func init() {
	rootCmd.AddCommand(unlinkCmd)

	unlinkCmd.Flags().BoolVarP(&unlinkYes, "yes", "y", false, "skip the confirmation prompt")
}

func runUnlink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := appFs()
	doc, id := args[0], args[1]

	buf, err := editor.Load(fs, doc)
	if err != nil {
		return err
	}

	prompter := &terminalPrompter{
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		presetYes: unlinkYes,
	}
	conn := workflow.NewConnector(newClaims(fs, cfg), newStore(fs, cfg), prompter, stderrNotifier{})

	removed, err := conn.Unlink(buf, id)
	if err != nil {
		return fmt.Errorf("unlink failed: %w", err)
	}
	if !removed {
		fmt.Fprintln(os.Stderr, "Cancelled, nothing changed.")
		return nil
	}

	if err := buf.Save(); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted connection %s and stripped its marker from %s\n", id, doc)
	return nil
}

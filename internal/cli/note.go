package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/factgraph/factgraph/internal/model"
	"github.com/factgraph/factgraph/internal/workflow"
)

// noteCmd groups the relevance-item operations of an open detail view.
var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add or remove relevance items on a connection",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <id> <text>...",
	Short: "Append a relevance item to a connection",
	Long: `Append one sanitized relevance item to the end of the row's item list.
A missing row is a silent no-op; run with --verbose to see it.

Example:
  factgraph note add 123456 "confirmed by the 2023 follow-up study"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNoteAdd,
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id> <number>",
	Short: "Remove a relevance item by its displayed number",
	Long: `Remove the relevance item at the given 1-based number, as displayed by
'factgraph show'. An out-of-range number is a silent no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: runNoteRm,
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRmCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := args[0]
	text := strings.Join(args[1:], " ")

	detail, ok, err := openDetail(cfg, id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := detail.AddItem(text); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	renderDetail(detail)
	return nil
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := args[0]
	number, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid item number %q", args[1])
	}

	detail, ok, err := openDetail(cfg, id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := detail.RemoveItem(number - 1); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	renderDetail(detail)
	return nil
}

func openDetail(cfg model.Config, id string) (*workflow.Detail, bool, error) {
	fs := appFs()
	detail, ok, err := workflow.OpenDetail(newStore(fs, cfg), id)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		stderrNotifier{}.Notify("no relevance row found for id " + id)
		return nil, false, nil
	}
	return detail, true, nil
}

// renderDetail re-renders the detail view from its in-memory mirror.
func renderDetail(detail *workflow.Detail) {
	fmt.Printf("%s %s\n", color.CyanString(detail.ID), color.New(color.Bold).Sprint(detail.Claim))
	if len(detail.Items) == 0 {
		fmt.Println("  (no relevance items)")
		return
	}
	for i, item := range detail.Items {
		fmt.Printf("  %d. %s\n", i+1, item)
	}
}

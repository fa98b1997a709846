package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the claim and relevance items behind a marker id",
	Long: `Show resolves one connection id the way activating an inline marker does:
the row is read through the renderer's cache and displayed with its claim
and numbered relevance items. A dangling id prints a notice instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := appFs()
	id := args[0]

	renderer := newRenderer(newStore(fs, cfg), cfg)
	conn, ok := renderer.Activate(id)
	if !ok {
		// The dangling-marker notice already went to stderr.
		return nil
	}

	fmt.Printf("%s %s\n", color.CyanString(id), color.New(color.Bold).Sprint(conn.Claim))
	if len(conn.RelevanceItems) == 0 {
		fmt.Println("  (no relevance items)")
		return nil
	}
	for i, item := range conn.RelevanceItems {
		fmt.Printf("  %d. %s\n", i+1, item)
	}
	return nil
}

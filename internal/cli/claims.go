package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// claimsCmd represents the claims command
var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List the claims available for linking",
	Long: `Claims lists the bulleted claims of the claims document, numbered the way
'factgraph link --claim' expects them. The document is re-parsed on every
invocation; claims have no stable ids.`,
	Args: cobra.NoArgs,
	RunE: runClaims,
}

func init() {
	rootCmd.AddCommand(claimsCmd)
}

func runClaims(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	list, err := newClaims(appFs(), cfg).List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Printf("No claims found in %s.\n", cfg.Paths.ClaimsFile)
		return nil
	}

	for i, claim := range list {
		fmt.Printf("  %s %s\n", color.CyanString("%2d.", i+1), claim.Text)
	}
	return nil
}

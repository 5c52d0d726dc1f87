package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/engine"
)

var diffCmd = &cobra.Command{
	Use:   "diff <baseline.json> <current.json>",
	Short: "Compare two scan or crawl results",
	Long: `Compare two JSON results and list violations that are new, fixed or
unchanged. Violations are matched by page, KWCAG item, rule and target.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseline, err := engine.LoadDocument(args[0])
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
		current, err := engine.LoadDocument(args[1])
		if err != nil {
			return fmt.Errorf("failed to load current result: %w", err)
		}

		diff := engine.Compare(current.Entries(), baseline.Entries())
		printDiff(cmd.OutOrStdout(), diff)

		if failOnNew, _ := cmd.Flags().GetBool("fail-on-new"); failOnNew && len(diff.New) > 0 {
			return fmt.Errorf("%d new violations", len(diff.New))
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().Bool("fail-on-new", false, "Exit with code 1 when new violations are found")
	rootCmd.AddCommand(diffCmd)
}

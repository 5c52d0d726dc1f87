package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/remediation"
	"github.com/mhb8436/aria/pkg/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "View KWCAG 2.2 items and rule mappings",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all KWCAG 2.2 inspection items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		principle, _ := cmd.Flags().GetInt("principle")
		out := cmd.OutOrStdout()

		items := catalog.Items()
		if principle != 0 {
			name := catalog.PrincipleName(principle)
			if name == "" {
				return fmt.Errorf("invalid principle number: %d. Use 1-4", principle)
			}
			items = catalog.ByPrinciple(principle)
			fmt.Fprintf(out, "\nKWCAG 2.2 - 원칙 %d: %s\n\n", principle, name)
		} else {
			fmt.Fprintf(out, "\nKWCAG 2.2 - 전체 %d개 검사항목\n\n", catalog.TotalItems)
		}
		printRulesList(out, items)
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show an item's rules and remediation guide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, ok := catalog.ByID(args[0])
		if !ok {
			return fmt.Errorf("unknown KWCAG item %q", args[0])
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, boldStyle.Render(fmt.Sprintf("[%s] %s (%s)", item.ID, item.Name, item.NameEn)))
		fmt.Fprintf(out, "원칙 %d %s | 수준 %s | 자동점검 %s\n", item.Principle, item.PrincipleName(), item.Level, automationLabel(item.Auto))
		fmt.Fprintln(out, dimStyle.Render(item.Description))
		if len(item.EngineRules) > 0 {
			fmt.Fprintf(out, "axe-core 규칙: %v\n", item.EngineRules)
		}
		if r, ok := rules.ByID(item.CustomRule); ok {
			fmt.Fprintf(out, "전용 규칙: %s (%s) - %s\n", r.ID(), r.Severity().Label(), r.Description())
		}

		plan, err := remediation.Default().Plan(item.ID, remediation.Vars{})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, plan)
		return nil
	},
}

func init() {
	rulesListCmd.Flags().IntP("principle", "p", 0, "Filter by principle number (1-4)")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rootCmd.AddCommand(rulesCmd)
}

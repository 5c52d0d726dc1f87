package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/axe"
	"github.com/mhb8436/aria/pkg/config"
	"github.com/mhb8436/aria/pkg/crawler"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/remediation"
	"github.com/mhb8436/aria/pkg/report"
	"github.com/mhb8436/aria/pkg/rules"
	"github.com/mhb8436/aria/pkg/scanner"
	"github.com/mhb8436/aria/pkg/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a single page for KWCAG 2.2 accessibility issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringP("output", "o", "", "Save results to file (.json, .html or .xlsx)")
	f.String("db", "", "SQLite database path to store results")
	f.IntP("timeout", "t", 30000, "Page load timeout in milliseconds")
	f.Bool("no-headless", false, "Run browser in headed mode")
	f.Bool("verbose", false, "Show detailed violation information")
	f.Bool("ci", false, "CI mode: exit with code 1 if violations exceed the threshold")
	f.Int("threshold", 0, "Maximum allowed violations (CI mode)")
	f.String("baseline", "", "Compare against a previous JSON result")
	f.Bool("no-progress", false, "Disable the progress spinner")
	rootCmd.AddCommand(scanCmd)
}

// applyScanFlags overrides config values with the flags the user set
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("timeout") {
		cfg.Scan.Timeout, _ = f.GetInt("timeout")
	}
	if noHeadless, _ := f.GetBool("no-headless"); noHeadless {
		cfg.Scan.Headless = false
	}
	if f.Changed("threshold") {
		cfg.CI.Threshold, _ = f.GetInt("threshold")
	}
	if f.Changed("db") {
		cfg.Report.DB, _ = f.GetString("db")
	}
}

func newScanner(cfg *config.Config) *scanner.Scanner {
	eng := axe.New(axe.Options{Path: cfg.Engine.AxePath, URL: cfg.Engine.AxeURL})
	return scanner.New(eng, rules.All(), cfg.ScanOptions())
}

func loadGuides(cfg *config.Config) (*remediation.Library, error) {
	lib := remediation.Default()
	if cfg.Report.GuidesDir != "" {
		if err := lib.LoadDir(cfg.Report.GuidesDir); err != nil {
			return nil, &engine.ConfigurationError{Field: "report.guides_dir", Err: err}
		}
	}
	return lib, nil
}

// formatForPath picks the report format from a file extension, JSON by default
func formatForPath(path string) report.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return report.FormatHTML
	case ".xlsx":
		return report.FormatExcel
	default:
		return report.FormatJSON
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScanFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	url := args[0]
	s := newScanner(cfg)
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	var result *engine.ScanResult
	err = runWithProgress(cmd.Context(), "페이지 점검 중: "+url, !noProgress, func(ctx context.Context, _ crawler.ProgressFunc) error {
		var scanErr error
		result, scanErr = s.ScanURL(ctx, url)
		return scanErr
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printScanResult(out, result)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && len(result.Violations) > 0 {
		fmt.Fprint(out, "\n=== 상세 위반 내용 ===\n\n")
		for _, v := range result.Violations {
			printViolationDetail(out, v)
			fmt.Fprintln(out)
		}
	}

	doc := &engine.Document{Scan: result}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		guides, err := loadGuides(cfg)
		if err != nil {
			return err
		}
		if err := report.Write(output, formatForPath(output), doc, report.Options{Guides: guides}); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResults saved to: %s\n", output)
	}

	if cmd.Flags().Changed("db") {
		id, err := saveScan(cfg.Report.DB, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nStored in DB (scan ID: %d)\n", id)
	}

	failing := len(result.Violations)
	if baseline, _ := cmd.Flags().GetString("baseline"); baseline != "" {
		prev, err := engine.LoadDocument(baseline)
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
		diff := engine.Compare(doc.Entries(), prev.Entries())
		fmt.Fprintln(out)
		printDiff(out, diff)
		failing = countViolations(diff.New)
	}

	if ci, _ := cmd.Flags().GetBool("ci"); ci && failing > cfg.CI.Threshold {
		return fmt.Errorf("CI check failed: %d violations (threshold: %d)", failing, cfg.CI.Threshold)
	}
	return nil
}

func saveScan(path string, r *engine.ScanResult) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.SaveScanResult(r)
}

// countViolations counts distinct (page, item, rule) violations among node entries
func countViolations(entries []engine.DiffEntry) int {
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.URL+"|"+e.KwcagID+"|"+e.RuleID] = true
	}
	return len(seen)
}

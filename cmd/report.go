package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/report"
	"github.com/mhb8436/aria/pkg/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an accessibility report from stored scan results",
	Long: `Generate an accessibility report from a scan or crawl stored in the
SQLite database, or from a JSON result file given with --input. Without an
id the most recent scan is used.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringP("format", "f", "html", "Report format: excel, html, json")
	f.StringP("output", "o", "", "Output file path (default aria-report.<ext>)")
	f.String("db", "aria-scan.db", "SQLite database path")
	f.Int64("scan-id", 0, "Specific scan ID to report")
	f.Int64("crawl-id", 0, "Specific crawl ID to report")
	f.StringP("input", "i", "", "Render a JSON result file instead of the database")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Report.Format, _ = f.GetString("format")
	}
	if f.Changed("db") {
		cfg.Report.DB, _ = f.GetString("db")
	}
	if f.Changed("output") {
		cfg.Report.Output, _ = f.GetString("output")
	}

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	doc, err := loadReportDocument(cmd, cfg.Report.DB)
	if err != nil {
		return err
	}

	output := cfg.Report.Output
	if output == "" {
		output = "aria-report" + format.Ext()
	}
	guides, err := loadGuides(cfg)
	if err != nil {
		return err
	}
	if err := report.Write(output, format, doc, report.Options{Guides: guides}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report generated: %s\n", output)
	return nil
}

func loadReportDocument(cmd *cobra.Command, dbPath string) (*engine.Document, error) {
	f := cmd.Flags()
	if input, _ := f.GetString("input"); input != "" {
		return engine.LoadDocument(input)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if crawlID, _ := f.GetInt64("crawl-id"); crawlID > 0 {
		c, err := st.CrawlByID(crawlID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("crawl ID %d not found", crawlID)
		}
		if err != nil {
			return nil, err
		}
		return &engine.Document{Crawl: c}, nil
	}

	scanID, _ := f.GetInt64("scan-id")
	if scanID <= 0 {
		scanID, err = st.LatestScanID()
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("no scan results found in database")
		}
		if err != nil {
			return nil, err
		}
	}
	s, err := st.ScanByID(scanID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("scan ID %d not found", scanID)
	}
	if err != nil {
		return nil, err
	}
	return &engine.Document{Scan: s}, nil
}

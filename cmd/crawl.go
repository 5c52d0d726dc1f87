package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/config"
	"github.com/mhb8436/aria/pkg/crawler"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/report"
	"github.com/mhb8436/aria/pkg/store"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Crawl a website and scan all pages for accessibility issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrawl,
}

func init() {
	f := crawlCmd.Flags()
	f.IntP("depth", "d", 3, "Maximum crawl depth")
	f.IntP("max-pages", "m", 50, "Maximum pages to scan")
	f.IntP("concurrency", "c", 3, "Pages scanned in parallel")
	f.Bool("same-domain", true, "Only follow links on the start URL's host")
	f.StringSlice("exclude", nil, "Skip URLs containing any of these substrings")
	f.StringP("output", "o", "", "Save results to file (.json, .html or .xlsx)")
	f.String("db", "", "SQLite database path to store results")
	f.IntP("timeout", "t", 30000, "Page load timeout in milliseconds")
	f.Bool("no-headless", false, "Run browser in headed mode")
	f.Bool("no-progress", false, "Disable the live progress display")
	rootCmd.AddCommand(crawlCmd)
}

func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) {
	applyScanFlags(cmd, cfg)

	f := cmd.Flags()
	if f.Changed("depth") {
		cfg.Crawl.Depth, _ = f.GetInt("depth")
	}
	if f.Changed("max-pages") {
		cfg.Crawl.MaxPages, _ = f.GetInt("max-pages")
	}
	if f.Changed("concurrency") {
		cfg.Crawl.Concurrency, _ = f.GetInt("concurrency")
	}
	if f.Changed("same-domain") {
		cfg.Crawl.SameDomain, _ = f.GetBool("same-domain")
	}
	if f.Changed("exclude") {
		extra, _ := f.GetStringSlice("exclude")
		cfg.Exclude.URLs = append(cfg.Exclude.URLs, extra...)
	}
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCrawlFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	startURL := args[0]
	s := newScanner(cfg)
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	var result *engine.CrawlResult
	title := fmt.Sprintf("크롤링 중: %s (depth %d, max %d)", startURL, cfg.Crawl.Depth, cfg.Crawl.MaxPages)
	err = runWithProgress(cmd.Context(), title, !noProgress, func(ctx context.Context, onProgress crawler.ProgressFunc) error {
		var crawlErr error
		result, crawlErr = crawler.Crawl(ctx, s, startURL, cfg.CrawlOptions(), onProgress)
		return crawlErr
	})
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printCrawlResult(out, result)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		guides, err := loadGuides(cfg)
		if err != nil {
			return err
		}
		doc := &engine.Document{Crawl: result}
		if err := report.Write(output, formatForPath(output), doc, report.Options{Guides: guides}); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResults saved to: %s\n", output)
	}

	if cmd.Flags().Changed("db") {
		id, err := saveCrawl(cfg.Report.DB, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nStored in DB (crawl ID: %d)\n", id)
	}
	return nil
}

func saveCrawl(path string, r *engine.CrawlResult) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.SaveCrawlResult(r)
}

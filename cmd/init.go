package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard for .ariarc.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = defaultConfigFile
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := runWizard(cmd.InOrStdin(), cmd.OutOrStdout(), cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "---------------------------------")
		fmt.Fprintln(out, "Setup Complete!")
		fmt.Fprintf(out, "Config:  %s\n", path)
		fmt.Fprintln(out, "You can now run 'aria scan <url>' or 'aria crawl <url>'")
		return nil
	},
}

type wizard struct {
	in  *bufio.Scanner
	out io.Writer
}

// ask prints a prompt and returns the trimmed answer, or def when empty
func (w *wizard) ask(prompt, def string) string {
	fmt.Fprintf(w.out, "%s [%s] > ", prompt, def)
	if !w.in.Scan() {
		return def
	}
	if answer := strings.TrimSpace(w.in.Text()); answer != "" {
		return answer
	}
	return def
}

func (w *wizard) askInt(prompt string, def, min, max int) int {
	for {
		answer := w.ask(prompt, strconv.Itoa(def))
		n, err := strconv.Atoi(answer)
		if err == nil && n >= min && n <= max {
			return n
		}
		fmt.Fprintf(w.out, "Please enter a number between %d and %d.\n", min, max)
		if w.in.Err() != nil || answer == strconv.Itoa(def) {
			return def
		}
	}
}

func (w *wizard) askBool(prompt string, def bool) bool {
	d := "n"
	if def {
		d = "y"
	}
	switch strings.ToLower(w.ask(prompt+" (y/n)", d)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return def
}

func runWizard(r io.Reader, out io.Writer, cfg *config.Config) error {
	w := &wizard{in: bufio.NewScanner(r), out: out}

	fmt.Fprintln(out, "Welcome to the ARIA Setup Wizard")
	fmt.Fprintln(out, "---------------------------------")

	fmt.Fprintln(out, "Step 1: Crawl bounds")
	cfg.Crawl.Depth = w.askInt("Maximum crawl depth", cfg.Crawl.Depth, 0, 10)
	cfg.Crawl.MaxPages = w.askInt("Maximum pages to scan", cfg.Crawl.MaxPages, 1, 10000)
	cfg.Crawl.Concurrency = w.askInt("Pages scanned in parallel", cfg.Crawl.Concurrency, 1, 16)
	cfg.Crawl.SameDomain = w.askBool("Stay on the start domain", cfg.Crawl.SameDomain)

	fmt.Fprintln(out, "\nStep 2: Page loading")
	cfg.Scan.Timeout = w.askInt("Page load timeout (ms)", cfg.Scan.Timeout, 1000, 600000)
	fmt.Fprintln(out, "Wait until: 1. load  2. domcontentloaded  3. networkidle")
	switch w.ask("Select", cfg.Scan.WaitUntil) {
	case "1", string(browser.WaitLoad):
		cfg.Scan.WaitUntil = string(browser.WaitLoad)
	case "2", string(browser.WaitDOMContentLoaded):
		cfg.Scan.WaitUntil = string(browser.WaitDOMContentLoaded)
	case "3", string(browser.WaitNetworkIdle):
		cfg.Scan.WaitUntil = string(browser.WaitNetworkIdle)
	default:
		fmt.Fprintf(out, "Invalid choice. Keeping %s.\n", cfg.Scan.WaitUntil)
	}

	fmt.Fprintln(out, "\nStep 3: Reporting")
	cfg.Report.Format = w.ask("Report format (html, json, excel)", cfg.Report.Format)
	cfg.Report.DB = w.ask("SQLite database path", cfg.Report.DB)
	cfg.CI.Threshold = w.askInt("CI violation threshold", cfg.CI.Threshold, 0, 1000000)

	return w.in.Err()
}

func init() {
	rootCmd.AddCommand(initCmd)
}

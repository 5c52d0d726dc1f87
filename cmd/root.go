package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mhb8436/aria/pkg/config"
	"github.com/mhb8436/aria/pkg/logger"
)

// Version is overridden at build time with -ldflags
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "aria",
	Short: "ARIA - KWCAG 2.2 Web Accessibility Checker",
	Long: `ARIA checks web pages against the 33 items of the Korean Web Content
Accessibility Guidelines (KWCAG) 2.2 using a headless browser, the axe-core
rule engine and a set of KWCAG-specific rules.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.DebugEnabled = DebugMode
	},
}

var (
	DebugMode  bool
	configPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .ariarc.yaml|.yml|.json in the current directory)")
}

// loadConfig reads the --config file or the .ariarc found in the working
// directory, falling back to defaults.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = config.Find(wd)
	}
	if path != "" {
		logger.Debugf("using config %s", path)
	}
	return config.Load(path)
}

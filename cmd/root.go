// Package cmd implements the lexipipe CLI using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/lexipipe/config"
	"github.com/gaurav-prasanna/lexipipe/logging"
)

var (
	flagConfig string

	v      = viper.New()
	cfg    *config.Config
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "lexipipe",
	Short: "lexipipe — word frequencies and CEFR levels for web pages",
	Long: `lexipipe fetches a web page, cleans it to plain text, counts word
frequencies and optionally keeps only words at or above a CEFR level.

Usage:
  lexipipe analyze <url> [flags]
  lexipipe levels`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: ./lexipipe.yaml or $HOME/.config/lexipipe/lexipipe.yaml)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("output_dir", "", "Output directory (default: current directory)")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("output.dir", pf.Lookup("output_dir"))
}

// loadConfig resolves the configuration and logger before any command runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(v, flagConfig)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	l, err := logging.New(cmd.ErrOrStderr(), level, logging.Format(c.Log.Format))
	if err != nil {
		return err
	}

	cfg, logger = c, l
	slog.SetDefault(l)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

// mustBind makes a flag override a config key. It only fails for a flag that
// was never defined.
func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

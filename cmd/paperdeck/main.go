// Command paperdeck converts academic papers into slide-deck plans from
// the command line.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bgrellier/paperdeck"
)

var (
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "paperdeck",
	Short:         "Convert academic papers into slide-deck plans",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "run store database path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(convertCmd, showCmd, listCmd)
}

// loadConfig builds the effective configuration from the config file and
// persistent flags.
func loadConfig() (paperdeck.Config, error) {
	cfg := paperdeck.DefaultConfig()
	if flagConfig != "" {
		var err error
		cfg, err = paperdeck.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

// storePath is the database location for commands that read the run
// store. They need one even when conversion itself would not.
func storePath() string {
	if flagDB != "" {
		return flagDB
	}
	return "paperdeck.db"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

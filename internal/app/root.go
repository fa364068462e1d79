// Package app contains the Cobra command tree for runlog.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"runlog/internal/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "runlog",
	Short: "A personal running log with pace math, charts, and Strava import",
	Long: `runlog keeps a log of your runs in a local SQLite database, serves a
JSON API for recording and browsing them, solves the distance/time/pace
triangle, and imports activities from Strava.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./config.yaml or ~/.runlog/config.yaml)")
}

// loadConfig reads configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

// newLogger builds the zerolog logger per the config's log section
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Log.Pretty {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

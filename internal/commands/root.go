// Package commands defines the caixa2alterdata CLI.
package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/caixalabs/caixa2alterdata/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "caixa2alterdata",
	Short: "Normalize cash-ledger spreadsheets into the Alterdata layout",
	Long: `caixa2alterdata ingests heterogeneous cash-ledger spreadsheets
(.xlsx, .xlsm, .xls, .csv) with varying header names, row offsets and pt-BR
locale conventions, and normalizes them into the fixed ten-column Alterdata
accounting layout.

Column detection combines a synonym vocabulary with fuzzy matching, header
rows are located automatically, payment dates take precedence over issuance
dates, and sheets lacking explicit accounts can derive debit/credit postings
from a single account column.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env, same as a development shell would load.
		_ = godotenv.Load()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/mapping.yaml", "mapping configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadMapping reads the mapping document, falling back to an empty mapping
// when the default config path does not exist.
func loadMapping(logger *slog.Logger) (*config.Mapping, error) {
	mapping, err := config.LoadMapping(cfgFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
			logger.Warn("mapping config not found, using defaults", slog.String("path", cfgFile))
			return &config.Mapping{}, nil
		}
		return nil, err
	}
	return mapping, nil
}

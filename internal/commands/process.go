package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/caixalabs/caixa2alterdata/internal/domain/service"
)

var (
	inDir  string
	outDir string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Normalize every spreadsheet in the input directory",
	Long: `Reads every supported file (.xlsx, .xlsm, .xls, .csv) in the input
directory, normalizes it into the Alterdata layout and writes the artifacts
to the output directory: the standardized workbook and CSV, the issue and
column-mapping logs, and a JSON run summary (also printed to stdout).

A file or sheet that cannot be processed is recorded as an inconsistency
and never aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		mapping, err := loadMapping(logger)
		if err != nil {
			return err
		}

		result, err := service.New(mapping, logger).Run(inDir, outDir)
		if err != nil {
			return err
		}

		summary, err := json.MarshalIndent(result.Summary, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(summary))

		if result.Summary.HasIssues {
			logger.Warn("run finished with inconsistencies", slog.Int("issues", len(result.Issues)))
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&inDir, "in", "samples", "input directory with ledger spreadsheets")
	processCmd.Flags().StringVar(&outDir, "out", "output", "output directory for generated artifacts")
	rootCmd.AddCommand(processCmd)
}

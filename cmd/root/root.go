// Package root contains the root command: convert statement PDFs to CSV.
package root

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metwallusion/BankStatement/internal/logging"
	"github.com/metwallusion/BankStatement/internal/models"
	"github.com/metwallusion/BankStatement/internal/parser"
	"github.com/metwallusion/BankStatement/internal/writer"
)

var (
	outputFlag   string
	brandFlag    string
	logLevelFlag string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "bankstatement [flags] <input.pdf> [input2.pdf ...]",
		Short: "Convert bank statement PDFs to normalized transaction CSVs",
		Long: `bankstatement extracts transactions (date, signed amount, memo) from
bank statement PDFs. The statement layout is detected automatically and a
byte-level recovery path handles PDFs whose text extraction degrades.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevelFlag
			if env := os.Getenv("BANKSTATEMENT_LOG_LEVEL"); env != "" && !cmd.Flags().Changed("log-level") {
				level = env
			}
			logging.Configure(level, "text")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			brand := models.Brand(strings.ToLower(brandFlag))
			if brand != "" && !models.KnownBrand(brand) {
				return fmt.Errorf("unknown brand %q (known: generic, wellsfargo, amex, chase)", brandFlag)
			}
			if outputFlag != "" && len(args) > 1 {
				return fmt.Errorf("--output names a single file and cannot be combined with %d inputs", len(args))
			}
			for _, input := range args {
				if err := convertFile(input, outputFlag, brand); err != nil {
					return fmt.Errorf("processing %s: %w", input, err)
				}
			}
			return nil
		},
	}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&logLevelFlag, "log-level", "l", "info", "log level (debug, info, warn, error)")
	Cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output CSV path, single input only (defaults to input name with .csv)")
	Cmd.Flags().StringVarP(&brandFlag, "brand", "b", "", "force a statement layout instead of auto-detecting")
}

func convertFile(inputPath, outputPath string, brand models.Brand) error {
	log := logging.GetLogger()

	if !strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		return fmt.Errorf("expected a .pdf file, got %q", inputPath)
	}

	engine := parser.NewEngine()
	stmt, err := engine.ParseFile(inputPath, brand)
	if err != nil {
		return err
	}

	if len(stmt.Transactions) == 0 {
		log.WithField("file", inputPath).Warn("no transactions found; the layout may not match known patterns")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	if err := (&writer.CSVWriter{}).WriteToFile(outPath, stmt); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"file":   inputPath,
		"brand":  stmt.Brand,
		"count":  len(stmt.Transactions),
		"output": outPath,
	}).Info("converted statement")
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := Cmd.Execute(); err != nil {
		logging.GetLogger().Error(err.Error())
		os.Exit(1)
	}
}

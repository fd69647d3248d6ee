// Package parse handles single statement parsing commands
package parse

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khahmed/personal-finance/cmd/root"
	"github.com/khahmed/personal-finance/internal/common"
	"github.com/khahmed/personal-finance/internal/validation"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one statement text file",
	Long: `Parse a single extracted statement text file into a structured record.

The institution and parser are selected from the institutions configuration
using the file's directory and name. The parsed statement is written as JSON,
and its holdings as CSV, into the output directory.

Example:
  personal-finance parse -i statements/CIBC/rrsp-october.txt -o output/`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	root.Log.Info("Parse command called")

	input := root.SharedFlags.Input
	if input == "" {
		logger.Fatal("Input file must be specified")
	}

	dispatcher, err := root.NewDispatcher()
	if err != nil {
		logger.Fatalf("Failed to load institutions configuration: %v", err)
	}

	stmtParser, err := dispatcher.Resolve(input)
	if err != nil {
		logger.Fatalf("Failed to resolve a parser: %v", err)
	}

	text, err := common.ReadStatementText(input)
	if err != nil {
		logger.Fatalf("Failed to read statement file: %v", err)
	}

	rec := stmtParser.Parse(text)
	if err := validation.ValidateStatement(rec, input); err != nil {
		logger.Fatalf("Statement is incomplete: %v", err)
	}

	logger.WithField("institution", rec.Institution).
		WithField("account", rec.AccountNumber).
		WithField("holdings", len(rec.Holdings)).
		Info("Parsed statement")

	if root.SharedFlags.Output != "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		jsonFile := filepath.Join(root.SharedFlags.Output, base+".json")
		if err := common.WriteStatementToJSON(rec, jsonFile); err != nil {
			logger.Fatalf("Failed to write JSON output: %v", err)
		}
		if len(rec.Holdings) > 0 {
			csvFile := filepath.Join(root.SharedFlags.Output, base+"-holdings.csv")
			if err := common.WriteHoldingsToCSV(rec.Holdings, csvFile); err != nil {
				logger.Fatalf("Failed to write CSV output: %v", err)
			}
		}
	}

	root.Log.Info("Statement parsed successfully!")
}

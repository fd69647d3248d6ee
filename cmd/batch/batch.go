// Package batch handles batch processing of statement directories
package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khahmed/personal-finance/cmd/root"
	"github.com/khahmed/personal-finance/internal/batch"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statement files from a directory",
	Long: `Batch process statement text files from an input directory and write the
parsed output to another directory.

Every .txt file under the input directory is routed to its parser through
the institutions configuration and processed independently; files that fail
to dispatch, parse or validate are logged and skipped.

Example:
  personal-finance batch -i statements/ -o output/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&root.Workers, "workers", "w", 0, "Worker count (0 means one per CPU)")
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	root.Log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	logger.Infof("Input directory: %s", inputDir)
	logger.Infof("Output directory: %s", outputDir)

	if inputDir == "" || outputDir == "" {
		logger.Fatal("Input and output directories must be specified")
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		logger.Fatalf("Failed to create output directory: %v", err)
	}

	dispatcher, err := root.NewDispatcher()
	if err != nil {
		logger.Fatalf("Failed to load institutions configuration: %v", err)
	}

	processor := batch.NewProcessor(dispatcher, logger, root.Workers)
	results, err := processor.ProcessDirectory(context.Background(), inputDir, outputDir)
	if err != nil {
		logger.Fatalf("Error during batch processing: %v", err)
	}

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	root.Log.Info(fmt.Sprintf("Batch processing completed. %d of %d statements parsed.", succeeded, len(results)))
}

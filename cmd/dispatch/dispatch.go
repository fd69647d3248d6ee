// Package dispatch handles the parser resolution command
package dispatch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khahmed/personal-finance/cmd/root"
)

// Cmd represents the dispatch command
var Cmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Show which parser a statement file resolves to",
	Long: `Resolve a statement file path against the institutions configuration and
print the parser that would handle it, without parsing the file.

Example:
  personal-finance dispatch -f statements/CIBC/rrsp-october.txt`,
	Run: dispatchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.File, "file", "f", "", "Statement file path to resolve")
	_ = Cmd.MarkFlagRequired("file")
}

func dispatchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	dispatcher, err := root.NewDispatcher()
	if err != nil {
		logger.Fatalf("Failed to load institutions configuration: %v", err)
	}

	entry, err := dispatcher.ResolveEntry(root.File)
	if err != nil {
		logger.Fatalf("No parser found: %v", err)
	}

	fmt.Printf("File:    %s\n", root.File)
	fmt.Printf("Parser:  %s\n", entry.Parser)
	fmt.Printf("Pattern: %s\n", entry.Pattern)
	if entry.Description != "" {
		fmt.Printf("Description: %s\n", entry.Description)
	}
}

// Package institutions handles the configuration listing command
package institutions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khahmed/personal-finance/cmd/root"
)

// Cmd represents the institutions command
var Cmd = &cobra.Command{
	Use:   "institutions",
	Short: "List configured institutions and their parsers",
	Long: `List every institution in the institutions configuration together with its
filename patterns and the parsers they select.`,
	Run: institutionsFunc,
}

func institutionsFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	dispatcher, err := root.NewDispatcher()
	if err != nil {
		logger.Fatalf("Failed to load institutions configuration: %v", err)
	}

	for _, inst := range dispatcher.ListInstitutions() {
		name := inst.Name
		if name == "" {
			name = inst.Key
		}
		fmt.Printf("%s (%s)\n", name, inst.Key)
		for _, entry := range inst.Parsers {
			description := entry.Description
			if description == "" {
				description = "No description"
			}
			fmt.Printf("  %-20s -> %-20s %s\n", entry.Pattern, entry.Parser, description)
		}
	}
}

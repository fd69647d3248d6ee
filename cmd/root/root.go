// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/khahmed/personal-finance/internal/common"
	"github.com/khahmed/personal-finance/internal/config"
	"github.com/khahmed/personal-finance/internal/dispatch"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/parser"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	Institutions string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "personal-finance",
		Short: "A CLI tool to parse investment statements and classify holdings.",
		Long: `personal-finance parses extracted investment statement text from
Canadian institutions into structured records, classifies each holding
by asset type and category, and writes JSON and CSV output.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to personal-finance!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Layer in the Viper configuration; flags not set on the
			// command line fall back to it.
			appConfig, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			AppConfig = appConfig
			Log = config.ConfigureLoggingFromConfig(appConfig)

			if SharedFlags.Institutions == "" {
				SharedFlags.Institutions = appConfig.Institutions.ConfigFile
			}
			if SharedFlags.Output == "" {
				SharedFlags.Output = appConfig.Output.Directory
			}
			if Workers == 0 {
				Workers = appConfig.Batch.Workers
			}

			adapter := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(adapter)
			common.SetLogger(adapter)
		},
	}

	// SharedFlags are the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// AppConfig is the loaded Viper configuration
	AppConfig *config.Config

	// Specific batch command flags
	Workers int

	// Specific dispatch command flag
	File string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Institutions, "institutions", "c", "", "Institutions configuration file (default from config)")
}

// GetLogger returns the shared logger wrapped in the logging abstraction.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// NewDispatcher loads the institutions configuration and builds a
// dispatcher over the built-in parser registry.
func NewDispatcher() (*dispatch.Dispatcher, error) {
	cfg, err := dispatch.LoadConfig(SharedFlags.Institutions)
	if err != nil {
		return nil, err
	}
	return dispatch.New(cfg, parser.NewRegistry(), GetLogger())
}

// Package common provides the output writers shared by the commands and
// the batch processor.
package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// WriteHoldingsToCSV writes holdings to a CSV file in a standardized
// format. All commands use this function to ensure consistent output.
func WriteHoldingsToCSV(holdings []models.HoldingRecord, csvFile string) error {
	if holdings == nil {
		return fmt.Errorf("cannot write nil holdings to CSV")
	}

	log.Info("Writing holdings to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(holdings)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&holdings, file); err != nil {
		log.WithError(err).Error("Failed to write CSV data")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}

// WriteStatementToJSON writes the full statement record, holdings and
// performance included, as indented JSON.
func WriteStatementToJSON(rec *models.StatementRecord, jsonFile string) error {
	if rec == nil {
		return fmt.Errorf("cannot write nil statement to JSON")
	}

	log.Info("Writing statement to JSON file",
		logging.Field{Key: logging.FieldOutputFile, Value: jsonFile},
		logging.Field{Key: logging.FieldInstitution, Value: rec.Institution})

	if err := os.MkdirAll(filepath.Dir(jsonFile), 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding statement: %w", err)
	}

	if err := os.WriteFile(jsonFile, data, 0600); err != nil {
		log.WithError(err).Error("Failed to write JSON file")
		return fmt.Errorf("error writing JSON file: %w", err)
	}

	return nil
}

// ReadStatementText reads a statement text file.
func ReadStatementText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading statement file %s: %w", path, err)
	}
	return string(data), nil
}

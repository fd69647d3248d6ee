package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khahmed/personal-finance/internal/dispatch"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/parser"
	"github.com/khahmed/personal-finance/internal/parsererror"
)

const edgeStatement = `CIBC Investor's Edge
RRSP Account Statement
Account # 500-123
June 1-June 30, 2025

Portfolio Assets
description quantity book value current market value
Equities
TELUS CORPORATION 400 $9,074.20 20.510 $8,204.00 400
total portfolio in Canadian Dollars
`

const incompleteStatement = `CIBC Investor's Edge
RRSP Account Statement
`

func testDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	cfg := &dispatch.Config{Institutions: map[string]dispatch.Institution{
		"CIBC": {Name: "CIBC", Parsers: []dispatch.ParserEntry{
			{Pattern: "*", Parser: "cibc-investors-edge"},
		}},
	}}
	d, err := dispatch.New(cfg, parser.NewRegistry(), &logging.MockLogger{})
	require.NoError(t, err)
	return d
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestProcessFile(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	path := filepath.Join(inputDir, "CIBC", "june-2025.txt")
	writeFile(t, path, edgeStatement)

	p := NewProcessor(testDispatcher(t), &logging.MockLogger{}, 1)

	rec, err := p.ProcessFile(path, outputDir)
	require.NoError(t, err)
	assert.Equal(t, "500-123", rec.AccountNumber)
	require.Len(t, rec.Holdings, 1)

	assert.FileExists(t, filepath.Join(outputDir, "june-2025.json"))
	assert.FileExists(t, filepath.Join(outputDir, "june-2025-holdings.csv"))
}

func TestProcessFileIncompleteRecord(t *testing.T) {
	inputDir := t.TempDir()
	path := filepath.Join(inputDir, "CIBC", "june-2025.txt")
	writeFile(t, path, incompleteStatement)

	p := NewProcessor(testDispatcher(t), &logging.MockLogger{}, 1)

	_, err := p.ProcessFile(path, "")
	var incomplete *parsererror.IncompleteRecordError
	require.ErrorAs(t, err, &incomplete)
}

func TestProcessDirectory(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, filepath.Join(inputDir, "CIBC", "april-2025.txt"), edgeStatement)
	writeFile(t, filepath.Join(inputDir, "CIBC", "may-2025.txt"), incompleteStatement)
	writeFile(t, filepath.Join(inputDir, "unmatched.txt"), edgeStatement)
	writeFile(t, filepath.Join(inputDir, "notes.md"), "not a statement")

	mock := &logging.MockLogger{}
	p := NewProcessor(testDispatcher(t), mock, 2)

	results, err := p.ProcessDirectory(context.Background(), inputDir, outputDir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results come back in sorted input order regardless of worker
	// scheduling.
	assert.Equal(t, filepath.Join(inputDir, "CIBC", "april-2025.txt"), results[0].File)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "500-123", results[0].Record.AccountNumber)

	// The incomplete statement and the undispatchable file are skipped,
	// not fatal.
	assert.Error(t, results[1].Err)
	var dispatchErr *parsererror.DispatchError
	assert.ErrorAs(t, results[2].Err, &dispatchErr)

	assert.FileExists(t, filepath.Join(outputDir, "april-2025.json"))
	assert.NoFileExists(t, filepath.Join(outputDir, "may-2025.json"))
	assert.True(t, mock.HasMessage("Batch processing completed"))
}

func TestProcessDirectoryEmpty(t *testing.T) {
	mock := &logging.MockLogger{}
	p := NewProcessor(testDispatcher(t), mock, 1)

	results, err := p.ProcessDirectory(context.Background(), t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.True(t, mock.HasMessage("No statement text files found"))
}

func TestProcessDirectoryMissingInput(t *testing.T) {
	p := NewProcessor(testDispatcher(t), &logging.MockLogger{}, 1)

	_, err := p.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}

func TestWorkerCountDefault(t *testing.T) {
	p := NewProcessor(testDispatcher(t), &logging.MockLogger{}, 0)
	assert.Greater(t, p.workerCount, 0)
}

// Package batch processes directories of extracted statement text files:
// each file is routed to its parser, parsed, validated and written out. A
// failed file is logged and skipped; it never aborts the run.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/khahmed/personal-finance/internal/common"
	"github.com/khahmed/personal-finance/internal/dispatch"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/validation"
)

// Processor runs statement files through dispatch, parsing and validation
// with a bounded worker pool.
type Processor struct {
	dispatcher  *dispatch.Dispatcher
	logger      logging.Logger
	workerCount int
}

// Result is the outcome for one input file.
type Result struct {
	File   string
	Record *models.StatementRecord
	Err    error
}

// NewProcessor creates a processor. A non-positive worker count defaults
// to the number of CPUs.
func NewProcessor(dispatcher *dispatch.Dispatcher, logger logging.Logger, workers int) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{dispatcher: dispatcher, logger: logger, workerCount: workers}
}

// ProcessDirectory processes every .txt file under inputDir, writing JSON
// and holdings CSV outputs to outputDir, and returns the per-file results
// in input order.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir, outputDir string) ([]Result, error) {
	files, err := findStatementFiles(inputDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		p.logger.Warn("No statement text files found",
			logging.Field{Key: logging.FieldFile, Value: inputDir})
		return nil, nil
	}

	results := p.processFiles(ctx, files, outputDir)

	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			p.logger.WithError(r.Err).Warn("Skipping statement file",
				logging.Field{Key: logging.FieldFile, Value: r.File})
			continue
		}
		succeeded++
	}

	p.logger.Info("Batch processing completed",
		logging.Field{Key: logging.FieldCount, Value: succeeded},
		logging.Field{Key: "failed", Value: len(results) - succeeded})

	return results, nil
}

// ProcessFile parses, validates and writes out one statement file.
func (p *Processor) ProcessFile(path, outputDir string) (*models.StatementRecord, error) {
	text, err := common.ReadStatementText(path)
	if err != nil {
		return nil, err
	}

	stmtParser, err := p.dispatcher.Resolve(path)
	if err != nil {
		return nil, err
	}

	rec := stmtParser.Parse(text)
	if err := validation.ValidateStatement(rec, path); err != nil {
		return nil, err
	}

	p.logger.Info("Parsed statement",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldInstitution, Value: rec.Institution},
		logging.Field{Key: logging.FieldAccount, Value: rec.AccountNumber},
		logging.Field{Key: logging.FieldCount, Value: len(rec.Holdings)})

	if outputDir != "" {
		if err := p.writeOutputs(rec, path, outputDir); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func (p *Processor) writeOutputs(rec *models.StatementRecord, path, outputDir string) error {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if err := common.WriteStatementToJSON(rec, filepath.Join(outputDir, base+".json")); err != nil {
		return err
	}
	if len(rec.Holdings) > 0 {
		return common.WriteHoldingsToCSV(rec.Holdings, filepath.Join(outputDir, base+"-holdings.csv"))
	}
	return nil
}

// processFiles fans the files out over the worker pool and returns the
// results reordered to match the input.
func (p *Processor) processFiles(ctx context.Context, files []string, outputDir string) []Result {
	type indexedFile struct {
		index int
		path  string
	}

	fileChan := make(chan indexedFile, p.workerCount)
	results := make([]Result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range fileChan {
				rec, err := p.ProcessFile(f.path, outputDir)
				results[f.index] = Result{File: f.path, Record: rec, Err: err}
			}
		}()
	}

feed:
	for i, path := range files {
		select {
		case fileChan <- indexedFile{index: i, path: path}:
		case <-ctx.Done():
			break feed
		}
	}
	close(fileChan)
	wg.Wait()

	return results
}

// findStatementFiles walks inputDir collecting .txt files in sorted order.
func findStatementFiles(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/fileutil"
	"github.com/cdileep23/go-xmlview/internal/preview"
)

// FileToExport represents a single input to print.
type FileToExport struct {
	InputPath  string
	OutputPath string
}

// ExportResult holds the outcome of a single export.
type ExportResult struct {
	InputPath  string
	OutputPath string
	Size       int // bytes of PDF written
	Err        error
	Duration   time.Duration
}

// runExport prints every input record to PDF using a pool of viewers.
func runExport(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseFlags("export", args, env)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("%w: pass XML or JSON record files, or directories", ErrNoInput)
	}

	workers := f.export.workers
	if !f.changed("workers") {
		workers = loadEnvConfig().Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}
	opts, err := viewerOptions(cfg)
	if err != nil {
		return err
	}

	outputDir := f.output
	if outputDir == "" {
		outputDir = cfg.Export.OutputDir
	}
	files, err := discoverFiles(rest, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .xml or .json files in %s", ErrNoInput, strings.Join(rest, ", "))
	}

	size := min(xmlview.ResolvePoolSize(workers), len(files))
	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}
	pool := env.NewPool(size, opts...)
	defer pool.Close()

	results := exportBatch(ctx, pool, files)
	failed := printResults(results, f.common.quiet, f.common.verbose, env)
	if failed == 0 {
		return nil
	}
	return &batchError{failed: failed, total: len(results), first: firstError(results)}
}

// batchError summarizes failed exports. It unwraps to the first failure,
// which decides the exit code.
type batchError struct {
	failed, total int
	first         error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d exports failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

func firstError(results []ExportResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// discoverFiles expands inputs into files to export. Directories are
// walked for .xml and .json files. A .pdf output is only allowed for a
// single file.
func discoverFiles(inputs []string, outputDir string) ([]FileToExport, error) {
	var files []FileToExport
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, FileToExport{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, outputDir, ""),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !isExportable(path) {
				return nil
			}
			files = append(files, FileToExport{
				InputPath:  path,
				OutputPath: resolveOutputPath(path, outputDir, input),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) > 1 && strings.HasSuffix(outputDir, ".pdf") {
		return nil, fmt.Errorf("%w: -o %s names one file but %d inputs were found", ErrInvalidFlagValue, outputDir, len(files))
	}
	return files, nil
}

// isExportable reports whether path is an XML file or a JSON record.
func isExportable(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml") || isRecordPath(path)
}

// resolveOutputPath determines the PDF path for an input file. Inputs found
// under baseInputDir keep their relative directory below outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.BaseName(inputPath) + ".pdf"

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}
	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(outputDir, base)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > xmlview.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, xmlview.MaxPoolSize)
	}
	return nil
}

// exportBatch exports files concurrently, one worker per pooled viewer.
// Results are in input order.
func exportBatch(ctx context.Context, pool Pool, files []FileToExport) []ExportResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ExportResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exporter, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ExportResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(exporter)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ExportResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = exportFile(ctx, exporter, files[idx])
			}
		}()
	}

	wg.Wait()
	return results
}

// exportFile prints one input and writes the PDF.
func exportFile(ctx context.Context, exporter Exporter, f FileToExport) ExportResult {
	start := time.Now()
	result := ExportResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) ExportResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	rec, err := readRecordFile(f.InputPath, false)
	if err != nil {
		return done(err)
	}
	if rec.OriginalFilename == "" {
		rec.OriginalFilename = filepath.Base(f.InputPath)
	}

	pdf, err := exporter.ExportPDF(ctx, exporter.Open(rec))
	if err != nil {
		return done(err)
	}
	if err := fileutil.WriteFile(f.OutputPath, pdf); err != nil {
		return done(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	result.Size = len(pdf)
	return done(nil)
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed exports.
func countResults(results []ExportResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each export and returns the number of failures.
func printResults(results []ExportResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, r.OutputPath, preview.FileSize(r.Size), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cblegare/md2pptx"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/fileutil"
	"github.com/cblegare/md2pptx/internal/hints"
	"github.com/cblegare/md2pptx/internal/wireframe"
)

// dirPermissions is used for created output directories.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2pptx.Input) (*md2pptx.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2pptx.Converter)(nil)

// outputs selects the files written per deck.
type outputs struct {
	yaml      bool
	wireframe bool
	dpi       float64 // 0 = wireframe.DefaultDPI
	codeStyle string  // "" = codeblock.DefaultStyle
}

// renderer builds the wireframe renderer for the selected options.
func (o outputs) renderer() *wireframe.Renderer {
	opts := []wireframe.Option{wireframe.WithDPI(o.dpi)}
	if o.codeStyle != "" {
		opts = append(opts, wireframe.WithCodeStyle(o.codeStyle))
	}
	return wireframe.New(opts...)
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Outputs    []string
	Warnings   []deck.Warning
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently. The converter holds no
// per-document state, so every worker shares it.
func convertBatch(ctx context.Context, svc CLIConverter, workers int, files []FileToConvert, out outputs) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], out)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, svc CLIConverter, f FileToConvert, out outputs) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	converted, err := svc.Convert(ctx, md2pptx.Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(f.InputPath),
	})
	if err != nil {
		return fail(err)
	}
	result.Warnings = converted.Diagnostics.Warnings

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if out.yaml {
		data, err := converted.MarshalLayout()
		if err != nil {
			return fail(err)
		}
		if err := fileutil.WriteFileAtomic(f.OutputPath, data); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, f.OutputPath)
	}

	if out.wireframe {
		paths, err := writeWireframes(out.renderer(), f, converted)
		result.Outputs = append(result.Outputs, paths...)
		if err != nil {
			return fail(err)
		}
	}

	if len(result.Outputs) > 0 {
		result.OutputPath = result.Outputs[0]
	}
	result.Duration = time.Since(start)
	return result
}

// writeWireframes writes one PNG per slide and returns the written paths.
func writeWireframes(r *wireframe.Renderer, f FileToConvert, converted *md2pptx.Result) ([]string, error) {
	var paths []string
	var buf bytes.Buffer
	for i, sl := range converted.Slides {
		buf.Reset()
		if err := r.WritePNG(&buf, sl); err != nil {
			return paths, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}
		path := f.wireframePath(i + 1)
		if err := fileutil.WriteFileAtomic(path, buf.Bytes()); err != nil {
			return paths, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		summary.Warnings += len(r.Warnings)
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d files)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), len(r.Outputs))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// firstError returns the first failed conversion's error.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

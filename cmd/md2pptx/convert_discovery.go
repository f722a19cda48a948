package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cblegare/md2pptx/internal/fileutil"
)

// Output file suffixes.
const (
	layoutSuffix    = ".layout.yaml"
	wireframeFormat = "%s-%03d.png"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers bounds --workers.
const maxWorkers = 64

// FileToConvert represents a single file to process. OutputPath is the
// layout file; wireframes are named after it.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// wireframePath returns the PNG path of slide number n.
func (f FileToConvert) wireframePath(n int) string {
	return fmt.Sprintf(wireframeFormat, strings.TrimSuffix(f.OutputPath, layoutSuffix), n)
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the layout file path for a markdown file.
// Files found under baseInputDir keep their relative directory below
// outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	target := inputPath
	if outputDir != "" {
		target = filepath.Join(outputDir, filepath.Base(inputPath))
		if baseInputDir != "" {
			if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
				target = filepath.Join(outputDir, rel)
			}
		}
	}
	return fileutil.ReplaceExtension(target, layoutSuffix)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

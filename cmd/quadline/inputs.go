package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aleksaelezovic/quadline/pkg/rdfio"
)

// stdinInput names standard input on the command line.
const stdinInput = "-"

// expandInputs resolves paths and glob patterns to regular files, keeping
// the order of the patterns and dropping repeats.
func expandInputs(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, pattern := range patterns {
		if pattern == stdinInput {
			add(stdinInput)
			continue
		}

		if !containsGlob(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				return nil, fmt.Errorf("path is a directory: %s", pattern)
			}
			add(filepath.Clean(pattern))
			continue
		}

		// Use doublestar for ** support
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// formatForPath picks the format from a file extension, falling back to
// the configured format.
func formatForPath(path string, fallback rdfio.Format) rdfio.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return rdfio.FormatNTriples
	case ".nq":
		return rdfio.FormatNQuads
	}
	return fallback
}

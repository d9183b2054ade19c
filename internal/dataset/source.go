package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Source loads series of values from somewhere.
type Source interface {
	Load() ([]Series, error)
}

// Compile-time interface conformance checks.
var (
	_ Source = (*LocalSource)(nil)
	_ Source = (*GitSource)(nil)
)

// StdinName is the pattern and series name used for standard input.
const StdinName = "-"

// LocalSource reads files matching glob patterns from the local filesystem.
// No patterns, or the pattern "-", reads Stdin.
type LocalSource struct {
	Patterns []string
	Stdin    io.Reader
	Options  ParseOptions
}

// Load reads every matched file once, in pattern order.
func (s *LocalSource) Load() ([]Series, error) {
	patterns := s.Patterns
	if len(patterns) == 0 {
		patterns = []string{StdinName}
	}

	var series []Series
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		if pattern == StdinName {
			if _, ok := seen[StdinName]; ok {
				continue
			}
			seen[StdinName] = struct{}{}
			stdin := s.Stdin
			if stdin == nil {
				stdin = os.Stdin
			}
			values, err := ReadValues(stdin, s.Options)
			if err != nil {
				return nil, fmt.Errorf("stdin: %w", err)
			}
			series = append(series, Series{Name: StdinName, Values: values})
			continue
		}

		paths, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			values, err := readFile(path, s.Options)
			if err != nil {
				return nil, err
			}
			series = append(series, Series{Name: path, Values: values})
		}
	}

	return series, nil
}

// expand resolves a glob pattern. A pattern without glob syntax is
// returned as-is so a missing file surfaces as an open error.
func expand(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %s", pattern)
	}
	return paths, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func readFile(path string, opts ParseOptions) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, err := ReadValues(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

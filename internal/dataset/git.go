package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads files from a revision of a Git repository without
// touching the working tree.
type GitSource struct {
	RepoPath string
	Revision string   // Branch, tag, SHA or any rev the repository can resolve; default HEAD
	Include  []string // Doublestar patterns matched against tree paths
	Exclude  []string
	Options  ParseOptions
}

// Load reads every matching file of the revision, ordered by path.
func (s *GitSource) Load() ([]Series, error) {
	repo, err := git.PlainOpen(s.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	rev := s.Revision
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", hash, err)
	}

	var series []Series
	err = tree.Files().ForEach(func(f *object.File) error {
		if !s.matchesFilters(f.Name) {
			return nil
		}
		values, err := readBlob(f, s.Options)
		if err != nil {
			return fmt.Errorf("%s:%s: %w", rev, f.Name, err)
		}
		series = append(series, Series{Name: rev + ":" + f.Name, Values: values})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Name < series[j].Name
	})
	return series, nil
}

func readBlob(f *object.File, opts ParseOptions) ([]float64, error) {
	r, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadValues(r, opts)
}

// matchesFilters checks if a path matches the include/exclude filters.
// An empty include list matches nothing; a revision holds more than data files.
func (s *GitSource) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range s.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	for _, pattern := range s.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

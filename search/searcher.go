package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/archimedes/core"
)

// DefaultScoreCutoff is the minimum similarity score used when callers do not choose one.
const DefaultScoreCutoff = 80

// Searcher scans a knowledge-base directory for paragraphs similar to a query.
// A Searcher holds no per-query state and is safe for concurrent use.
type Searcher struct {
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.logger = s.logger.With("component", "kb-searcher")
	return s, nil
}

// Search returns the paragraphs in dir whose score against query is at least cutoff,
// ordered by score descending. Ties keep file then paragraph order.
// The cutoff is compared as given; values outside [0, 100] are not rejected.
func (s *Searcher) Search(query, dir string, cutoff int) ([]*core.Match, error) {
	return s.SearchWithMonitor(query, dir, cutoff, nil)
}

// SearchWithMonitor is Search with callbacks at each stage of the scan.
func (s *Searcher) SearchWithMonitor(query, dir string, cutoff int, monitor SearchMonitor) ([]*core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query, dir)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	// os.ReadDir sorts by file name, which fixes the encounter order used for ties.
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Error("error listing knowledge base", "dir", dir, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, dir, err)
	}

	needle := strings.ToLower(query)
	matches := make([]*core.Match, 0)
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}

		content, err := readDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			s.logger.Warn("could not read knowledge base file", "file", entry.Name(), "err", err)
			monitor.FileSkipped(entry.Name(), err)
			continue
		}

		paragraphs := SplitParagraphs(content)
		for _, paragraph := range paragraphs {
			score := PartialRatio(needle, strings.ToLower(paragraph))
			if score >= cutoff {
				matches = append(matches, core.NewMatch(entry.Name(), paragraph, score))
			}
		}
		monitor.FileScanned(entry.Name(), len(paragraphs))
	}

	slices.SortStableFunc(matches, func(a, b *core.Match) int {
		return b.Score - a.Score
	})

	s.logger.Debug("knowledge base search complete", "query", query, "dir", dir, "cutoff", cutoff, "matches", len(matches))
	monitor.Finish(matches)
	return matches, nil
}

// Report runs Search and renders the outcome as a string. Every failure is
// converted into a human-readable message; Report never returns an error.
func (s *Searcher) Report(query, dir string, cutoff int) string {
	return s.ReportWithMonitor(query, dir, cutoff, nil)
}

// ReportWithMonitor is Report with callbacks at each stage of the scan.
func (s *Searcher) ReportWithMonitor(query, dir string, cutoff int, monitor SearchMonitor) string {
	matches, err := s.SearchWithMonitor(query, dir, cutoff, monitor)
	switch {
	case errors.Is(err, ErrDirectoryNotFound):
		return DirectoryNotFoundMessage(dir)
	case err != nil:
		return fmt.Sprintf("Error: Could not search knowledge base at '%s': %v", dir, err)
	}
	return FormatReport(query, matches)
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, filepath.Base(path))
	}
	return normalizeNewlines(string(data)), nil
}

// SearchKnowledgeBase searches dir with a default Searcher and returns the report.
func SearchKnowledgeBase(query, dir string, cutoff int) string {
	s, _ := NewSearcher()
	return s.Report(query, dir, cutoff)
}

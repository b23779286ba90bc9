package loader

import (
	"context"
	"log/slog"
	"sync"
)

// Stats holds statistics about one store load.
type Stats struct {
	mu           sync.Mutex
	Sheets       int
	LoadedSheets int
	Cards        int
	MatchupCards int
	Failures     map[string]string
}

// NewStats creates and initializes a new Stats object.
func NewStats() *Stats {
	return &Stats{
		Failures: make(map[string]string),
	}
}

// AddLoaded records a sheet that was fetched and rendered.
func (s *Stats) AddLoaded(cards int, isMatchup bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sheets++
	s.LoadedSheets++
	s.Cards += cards
	if isMatchup {
		s.MatchupCards += cards
	}
}

// AddFailure records a sheet that could not be loaded and why.
func (s *Stats) AddFailure(sheet, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sheets++
	s.Failures[sheet] = reason
}

// Log prints the load summary to the provided logger.
func (s *Stats) Log(ctx context.Context, logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.InfoContext(ctx, "Store load finished",
		"sheets", s.Sheets,
		"loaded", s.LoadedSheets,
		"cards", s.Cards,
		"matchupCards", s.MatchupCards,
		"failed", len(s.Failures),
	)
	for sheet, reason := range s.Failures {
		logger.DebugContext(ctx, "Sheet not loaded", "sheet", sheet, "reason", reason)
	}
}

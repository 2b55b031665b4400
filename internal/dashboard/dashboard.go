// Package dashboard rebuilds the backlog index from the vault and renders summary views.
package dashboard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lepinkainen/backlog/internal/datastore"
	"github.com/lepinkainen/backlog/internal/metrics"
	"github.com/lepinkainen/backlog/internal/obsidian"
)

// Defaults for the summary views.
const (
	DefaultTopLimit       = 10
	DefaultQuickWinRating = 80
)

// Index is the storage the dashboard rebuilds and queries.
type Index interface {
	ReplaceGames(records []map[string]any) error
	CountByStatus() (map[string]int, error)
	TopEfficiency(limit int) ([]datastore.GameRow, error)
	QuickWins(minRating, limit int) ([]datastore.GameRow, error)
}

// Summary is the aggregated view of all backlog notes.
type Summary struct {
	Total     int
	Skipped   int
	ByStatus  map[string]int
	Top       []datastore.GameRow
	QuickWins []datastore.GameRow
}

// Statuses returns the status names in a stable order, most games first.
func (s *Summary) Statuses() []string {
	names := make([]string, 0, len(s.ByStatus))
	for name := range s.ByStatus {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.ByStatus[names[i]] != s.ByStatus[names[j]] {
			return s.ByStatus[names[i]] > s.ByStatus[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Rebuild scans folder for game notes, replaces the index contents and returns the summary.
// Unreadable or malformed notes are logged and counted as skipped.
func Rebuild(folder string, index Index) (*Summary, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read backlog folder: %w", err)
	}

	summary := &Summary{}
	var records []map[string]any

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") || entry.Name() == NoteFilename {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable note", "path", path, "error", err)
			summary.Skipped++
			continue
		}

		game, err := obsidian.ParseGameNote(content)
		if err != nil {
			slog.Warn("Skipping note with invalid frontmatter", "path", path, "error", err)
			summary.Skipped++
			continue
		}
		if game == nil {
			continue
		}

		records = append(records, datastore.GameRecord(entry.Name(), game))
	}

	if err := index.ReplaceGames(records); err != nil {
		return nil, err
	}
	summary.Total = len(records)

	if summary.ByStatus, err = index.CountByStatus(); err != nil {
		return nil, err
	}
	if summary.Top, err = index.TopEfficiency(DefaultTopLimit); err != nil {
		return nil, err
	}
	if summary.QuickWins, err = index.QuickWins(DefaultQuickWinRating, DefaultTopLimit); err != nil {
		return nil, err
	}

	metrics.SetGameCounts(summary.ByStatus)
	slog.Info("Rebuilt backlog index", "games", summary.Total, "skipped", summary.Skipped)
	return summary, nil
}

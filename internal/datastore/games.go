package datastore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/backlog/internal/backlog"
)

// GamesTable is the index table name.
const GamesTable = "games"

// GamesSchema creates the games index.
const GamesSchema = `CREATE TABLE IF NOT EXISTS games (
	note_path    TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	platform     TEXT,
	priority     TEXT,
	status       TEXT,
	rating       INTEGER,
	hours        REAL,
	efficiency   REAL,
	release_year INTEGER,
	igdb_id      INTEGER,
	genres       TEXT,
	added        TEXT
)`

const gameColumns = "note_path, title, platform, priority, status, rating, hours, efficiency, release_year"

// GameRow is one indexed note.
type GameRow struct {
	NotePath    string
	Title       string
	Platform    string
	Priority    string
	Status      string
	Rating      *int
	Hours       *float64
	Efficiency  *float64
	ReleaseYear *int
}

// GameRecord converts an enriched game into an insertable record.
func GameRecord(notePath string, g *backlog.Game) map[string]any {
	var added any
	if !g.AddedAt.IsZero() {
		added = g.AddedAt.Format(time.DateOnly)
	}
	return map[string]any{
		"note_path":    notePath,
		"title":        g.Title,
		"platform":     g.Platform,
		"priority":     g.Priority,
		"status":       g.Status,
		"rating":       deref(g.Rating),
		"hours":        deref(g.HoursToBeat),
		"efficiency":   deref(g.Efficiency),
		"release_year": deref(g.ReleaseYear),
		"igdb_id":      deref(g.IGDBID),
		"genres":       strings.Join(g.Genres, ", "),
		"added":        added,
	}
}

// EnsureGamesTable creates the games table when missing.
func (s *SQLiteStore) EnsureGamesTable() error {
	return s.CreateTable(GamesSchema)
}

// ReplaceGames swaps the index contents for records in one transaction.
func (s *SQLiteStore) ReplaceGames(records []map[string]any) error {
	if err := s.EnsureGamesTable(); err != nil {
		return err
	}
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM " + GamesTable); err != nil {
			return fmt.Errorf("failed to clear games: %w", err)
		}
		return insertRecords(tx, GamesTable, records)
	})
}

// UpsertGame inserts or replaces the row for notePath.
func (s *SQLiteStore) UpsertGame(notePath string, g *backlog.Game) error {
	if err := s.EnsureGamesTable(); err != nil {
		return err
	}
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM "+GamesTable+" WHERE note_path = ?", notePath); err != nil {
			return fmt.Errorf("failed to replace game: %w", err)
		}
		return insertRecords(tx, GamesTable, []map[string]any{GameRecord(notePath, g)})
	})
}

// CountByStatus returns the number of indexed games per status.
func (s *SQLiteStore) CountByStatus() (map[string]int, error) {
	rows, err := s.db.Query("SELECT COALESCE(status, ''), COUNT(*) FROM games GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// TopEfficiency returns unfinished games ordered by efficiency, best first.
func (s *SQLiteStore) TopEfficiency(limit int) ([]GameRow, error) {
	return s.queryGames(
		"SELECT "+gameColumns+" FROM games WHERE efficiency IS NOT NULL AND status NOT IN ('Completed', 'Abandoned') ORDER BY efficiency DESC, title LIMIT ?",
		limit)
}

// QuickWins returns unfinished games rated at least minRating, shortest first.
func (s *SQLiteStore) QuickWins(minRating, limit int) ([]GameRow, error) {
	return s.queryGames(
		"SELECT "+gameColumns+" FROM games WHERE rating >= ? AND hours > 0 AND status NOT IN ('Completed', 'Abandoned') ORDER BY hours ASC, rating DESC, title LIMIT ?",
		minRating, limit)
}

func (s *SQLiteStore) queryGames(query string, args ...any) ([]GameRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []GameRow
	for rows.Next() {
		var (
			row                    GameRow
			platform, prio, status sql.NullString
			rating, year           sql.NullInt64
			hours, efficiency      sql.NullFloat64
		)
		if err := rows.Scan(&row.NotePath, &row.Title, &platform, &prio, &status, &rating, &hours, &efficiency, &year); err != nil {
			return nil, err
		}
		row.Platform, row.Priority, row.Status = platform.String, prio.String, status.String
		row.Rating = nullInt(rating)
		row.ReleaseYear = nullInt(year)
		row.Hours = nullFloat(hours)
		row.Efficiency = nullFloat(efficiency)
		result = append(result, row)
	}
	return result, rows.Err()
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

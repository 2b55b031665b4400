// Package backlog assembles enriched game records from the catalog, completion-time and
// artwork sources.
package backlog

import "time"

// Default user selections.
const (
	DefaultPriority = "Medium"
	DefaultStatus   = "Backlog"
)

// Selection is what the user picked: a catalog id plus their own classification.
type Selection struct {
	GameID   int64
	Platform string
	Priority string
	Status   string
}

// Game is the enriched record handed to the note writer. Optional fields are nil when the
// source had nothing; a zero HoursToBeat is a real value and differs from nil.
type Game struct {
	Title    string
	Slug     string
	Platform string
	Priority string
	Status   string

	Rating        *int
	HoursToBeat   *float64
	Completionist *float64
	Efficiency    *float64
	CoverURL      *string
	Description   *string
	ReleaseYear   *int
	Genres        []string

	IGDBID *int64
	HLTBID *int

	AddedAt time.Time
}

// HasEfficiency reports whether the record carries a derived value score.
func (g *Game) HasEfficiency() bool {
	return g != nil && g.Efficiency != nil
}

func (s Selection) withDefaults() Selection {
	if s.Priority == "" {
		s.Priority = DefaultPriority
	}
	if s.Status == "" {
		s.Status = DefaultStatus
	}
	return s
}

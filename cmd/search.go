package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lepinkainen/backlog/internal/igdb"
)

// SearchCmd lists catalog candidates for a query.
type SearchCmd struct {
	Query string `arg:"" help:"Game title to search for"`
	Limit int    `help:"Maximum number of results" default:"10"`
}

func (s *SearchCmd) Run(ctx context.Context) error {
	games, err := newCatalog().Search(ctx, s.Query, s.Limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(games) == 0 {
		_, _ = fmt.Fprintf(out, "No games found for %q\n", s.Query)
		return nil
	}

	for _, game := range games {
		_, _ = fmt.Fprintln(out, formatCandidate(game))
	}
	return nil
}

func formatCandidate(game igdb.Game) string {
	line := fmt.Sprintf("%8d  %s", game.ID, game.Name)
	if year := game.ReleaseYear(); year > 0 {
		line += fmt.Sprintf(" (%d)", year)
	}
	if platforms := game.PlatformNames(); len(platforms) > 0 {
		line += " [" + strings.Join(platforms, ", ") + "]"
	}
	return line
}

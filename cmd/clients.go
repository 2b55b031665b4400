package cmd

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/backlog/internal/backlog"
	"github.com/lepinkainen/backlog/internal/config"
	"github.com/lepinkainen/backlog/internal/datastore"
	"github.com/lepinkainen/backlog/internal/fileutil"
	"github.com/lepinkainen/backlog/internal/hltb"
	"github.com/lepinkainen/backlog/internal/igdb"
	"github.com/lepinkainen/backlog/internal/obsidian"
	"github.com/lepinkainen/backlog/internal/steamgriddb"
	"github.com/lepinkainen/backlog/internal/tui"
)

// catalog is the part of the IGDB client the commands use.
type catalog interface {
	backlog.Catalog
	Search(ctx context.Context, query string, limit int) ([]igdb.Game, error)
}

// gameIndex is the sqlite index as seen by the commands.
type gameIndex interface {
	EnsureGamesTable() error
	UpsertGame(notePath string, g *backlog.Game) error
	ReplaceGames(records []map[string]any) error
	CountByStatus() (map[string]int, error)
	TopEfficiency(limit int) ([]datastore.GameRow, error)
	QuickWins(minRating, limit int) ([]datastore.GameRow, error)
	Close() error
}

// Swapped in tests.
var (
	newCatalog = func() catalog {
		return igdb.NewClient(config.IGDBClientID, config.IGDBClientSecret,
			igdb.WithTokenExpiryMargin(config.TokenExpiryMargin))
	}

	newCompletionTimes = func() backlog.CompletionTimes {
		return hltb.NewClient()
	}

	newArtwork = func() backlog.Artwork {
		if config.SteamGridDBAPIKey == "" {
			slog.Info("SteamGridDB API key not set, using catalog covers only")
			return nil
		}
		return steamgriddb.NewClient(config.SteamGridDBAPIKey,
			steamgriddb.WithPreferredStyles(config.GridStyles))
	}

	openIndex = func(path string) (gameIndex, error) {
		store := datastore.NewSQLiteStore(path)
		if err := store.Connect(); err != nil {
			return nil, err
		}
		if err := store.EnsureGamesTable(); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	}

	selectGame    = tui.SelectGame
	downloadCover = fileutil.DownloadCover
	writeGameNote = obsidian.WriteGameNote
)

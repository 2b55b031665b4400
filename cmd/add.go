package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lepinkainen/backlog/internal/backlog"
	"github.com/lepinkainen/backlog/internal/config"
	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
	"github.com/lepinkainen/backlog/internal/fileutil"
	"github.com/lepinkainen/backlog/internal/igdb"
	"github.com/lepinkainen/backlog/internal/obsidian"
	"github.com/lepinkainen/backlog/internal/tui"
)

// AddCmd searches the catalog, enriches the chosen game and writes its note.
type AddCmd struct {
	Query         string `arg:"" help:"Game title to search for"`
	Platform      string `short:"p" required:"" help:"Platform the game will be played on"`
	Priority      string `help:"Backlog priority" default:"Medium"`
	Status        string `help:"Backlog status" default:"Backlog"`
	NoInteractive bool   `help:"Pick the first search result instead of showing the selection UI"`
	DownloadCover bool   `help:"Store the cover image in the vault"`
	Overwrite     bool   `help:"Overwrite the note if it already exists"`
}

func (a *AddCmd) Run(ctx context.Context) error {
	cat := newCatalog()

	games, err := cat.Search(ctx, a.Query, 0)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no games found for %q", a.Query)
	}

	chosen, err := a.choose(games)
	if err != nil || chosen == nil {
		return err
	}

	enricher := backlog.NewEnricher(cat, newCompletionTimes(), newArtwork(),
		backlog.WithCoverSize(igdb.ParseCoverSize(config.IGDBCoverSize)))

	game, err := enricher.Enrich(ctx, backlog.Selection{
		GameID:   chosen.ID,
		Platform: a.Platform,
		Priority: a.Priority,
		Status:   a.Status,
	})
	if err != nil {
		return err
	}

	dir := backlogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backlog folder: %w", err)
	}

	opts := obsidian.WriteOptions{Overwrite: a.Overwrite || config.OverwriteFiles}
	if notePath := fileutil.GetMarkdownFilePath(game.Title, dir); !opts.Overwrite && fileutil.FileExists(notePath) {
		slog.Info("Note already exists, use --overwrite to replace it", "path", notePath)
		return nil
	}

	if a.DownloadCover && game.CoverURL != nil {
		result, err := downloadCover(ctx, fileutil.CoverDownloadOptions{
			URL:          *game.CoverURL,
			OutputDir:    dir,
			Title:        game.Title,
			UpdateCovers: config.UpdateCovers,
		})
		if err != nil {
			slog.Warn("Failed to download cover", "title", game.Title, "error", err)
		} else if result != nil {
			opts.LocalCover = result.RelativePath
		}
	}

	path, written, err := writeGameNote(dir, game, opts)
	if err != nil {
		return err
	}
	if !written {
		slog.Info("Note already exists, use --overwrite to replace it", "path", path)
		return nil
	}

	index, err := openIndex(config.DBFile)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = index.Close() }()

	if err := index.UpsertGame(filepath.Base(path), game); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Added %s to %s\n", game.Title, path)
	return nil
}

// choose returns the game to add, nil when the user skipped.
func (a *AddCmd) choose(games []igdb.Game) (*igdb.Game, error) {
	if a.NoInteractive {
		return &games[0], nil
	}

	result, err := selectGame(a.Query, games)
	if err != nil {
		return nil, fmt.Errorf("selection failed: %w", err)
	}

	switch result.Action {
	case tui.ActionSelected:
		return result.Selection, nil
	case tui.ActionStopped:
		return nil, backlogerrors.NewStopProcessingError("selection stopped by user")
	default:
		slog.Info("Skipped", "query", a.Query)
		return nil, nil
	}
}

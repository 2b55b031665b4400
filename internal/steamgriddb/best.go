package steamgriddb

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// BestGrid picks the highest scored safe grid for a game. It first asks for the preferred
// styles without nsfw or humor images, then for any style without nsfw images. Errors are
// logged and reported as nil; artwork is always optional.
func (c *Client) BestGrid(ctx context.Context, gameID int) *Image {
	safe := false

	grids, err := c.GetGrids(ctx, gameID, Filters{Styles: c.preferredStyles, NSFW: &safe, Humor: &safe})
	if err != nil {
		slog.Warn("SteamGridDB grid lookup failed", "game_id", gameID, "error", err)
		return nil
	}

	if len(grids) == 0 {
		slog.Debug("No preferred-style grids, retrying without style filter", "game_id", gameID)
		grids, err = c.GetGrids(ctx, gameID, Filters{NSFW: &safe})
		if err != nil {
			slog.Warn("SteamGridDB grid lookup failed", "game_id", gameID, "error", err)
			return nil
		}
	}

	return topScored(grids)
}

// BestGridForTitle resolves title to a SteamGridDB game and returns its best grid.
func (c *Client) BestGridForTitle(ctx context.Context, title string) *Image {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	games, err := c.Search(ctx, title)
	if err != nil {
		slog.Warn("SteamGridDB search failed", "title", title, "error", err)
		return nil
	}
	if len(games) == 0 {
		slog.Debug("No SteamGridDB match", "title", title)
		return nil
	}

	return c.BestGrid(ctx, games[0].ID)
}

// topScored returns the image with the highest score; the first one wins ties.
func topScored(images []Image) *Image {
	if len(images) == 0 {
		return nil
	}

	sorted := append([]Image(nil), images...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return &sorted[0]
}

package steamgriddb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GetGrids returns grid (cover) images for a SteamGridDB game id.
func (c *Client) GetGrids(ctx context.Context, gameID int, filters Filters) ([]Image, error) {
	return c.images(ctx, "grids", gameID, filters)
}

// GetHeroes returns hero (banner) images for a SteamGridDB game id.
func (c *Client) GetHeroes(ctx context.Context, gameID int, filters Filters) ([]Image, error) {
	return c.images(ctx, "heroes", gameID, filters)
}

// GetLogos returns logo images for a SteamGridDB game id.
func (c *Client) GetLogos(ctx context.Context, gameID int, filters Filters) ([]Image, error) {
	return c.images(ctx, "logos", gameID, filters)
}

func (c *Client) images(ctx context.Context, kind string, gameID int, filters Filters) ([]Image, error) {
	return getJSON[[]Image](ctx, c, fmt.Sprintf("/%s/game/%d", kind, gameID), filters.values())
}

// values encodes only the filters that were set.
func (f Filters) values() url.Values {
	params := url.Values{}
	if len(f.Styles) > 0 {
		params.Set("styles", strings.Join(f.Styles, ","))
	}
	if len(f.Dimensions) > 0 {
		params.Set("dimensions", strings.Join(f.Dimensions, ","))
	}
	if f.NSFW != nil {
		params.Set("nsfw", strconv.FormatBool(*f.NSFW))
	}
	if f.Humor != nil {
		params.Set("humor", strconv.FormatBool(*f.Humor))
	}
	return params
}

package igdb

import (
	"context"
	"fmt"
	"strings"
)

// Search performs a full-text search and returns at most limit games.
// A non-positive limit uses the default of 10.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	body := fmt.Sprintf("search %s; fields %s; limit %d;", quote(query), gameFields, limit)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, err
	}

	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

// GetByID fetches a single game. It returns nil, nil when the id is unknown.
func (c *Client) GetByID(ctx context.Context, id int64) (*Game, error) {
	return c.getOne(ctx, fmt.Sprintf("where id = %d;", id))
}

// GetBySlug fetches a single game by slug. It returns nil, nil when the slug is unknown.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Game, error) {
	return c.getOne(ctx, fmt.Sprintf("where slug = %s;", quote(slug)))
}

func (c *Client) getOne(ctx context.Context, where string) (*Game, error) {
	body := fmt.Sprintf("fields %s; %s limit 1;", gameFields, where)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

// quote renders s as an Apicalypse string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

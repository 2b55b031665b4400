package steamgriddb

import (
	"context"
	"net/url"
)

// Search returns autocomplete matches for a title.
func (c *Client) Search(ctx context.Context, query string) ([]Game, error) {
	return getJSON[[]Game](ctx, c, "/search/autocomplete/"+url.PathEscape(query), nil)
}

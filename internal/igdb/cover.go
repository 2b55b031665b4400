package igdb

import "fmt"

// CoverSize is an IGDB image size preset.
type CoverSize string

// Supported cover sizes.
const (
	CoverSmall CoverSize = "cover_small"
	CoverBig   CoverSize = "cover_big"
	Cover720p  CoverSize = "720p"
	Cover1080p CoverSize = "1080p"
)

// DefaultSize is used when no size is requested.
const DefaultSize = CoverBig

// CoverURL formats the CDN URL for an image id. An empty size uses cover_big.
func (c *Client) CoverURL(imageID string, size CoverSize) string {
	if size == "" {
		size = DefaultSize
	}
	return fmt.Sprintf("%s/t_%s/%s.jpg", c.imageBaseURL, size, imageID)
}

// ParseCoverSize maps a config value to a CoverSize, falling back to cover_big.
func ParseCoverSize(value string) CoverSize {
	switch CoverSize(value) {
	case CoverSmall, CoverBig, Cover720p, Cover1080p:
		return CoverSize(value)
	default:
		return DefaultSize
	}
}

package igdb

import "time"

// Game is a catalog record as returned by the games endpoint.
type Game struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Summary          *string    `json:"summary,omitempty"`
	Storyline        *string    `json:"storyline,omitempty"`
	Rating           *float64   `json:"rating,omitempty"`            // user rating, 0-100
	AggregatedRating *float64   `json:"aggregated_rating,omitempty"` // critic rating, 0-100
	FirstReleaseDate *int64     `json:"first_release_date,omitempty"`
	Cover            *Cover     `json:"cover,omitempty"`
	Genres           []NamedRef `json:"genres,omitempty"`
	Platforms        []NamedRef `json:"platforms,omitempty"`
	Websites         []Website  `json:"websites,omitempty"`
}

// Cover references an image hosted on the IGDB image CDN.
type Cover struct {
	ID      int64  `json:"id"`
	ImageID string `json:"image_id"`
}

// NamedRef is an expanded reference such as a genre or platform.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Website is an external link attached to a game.
type Website struct {
	URL      string `json:"url"`
	Category int    `json:"category"`
}

// GenreNames returns the genre names in catalog order.
func (g Game) GenreNames() []string {
	return refNames(g.Genres)
}

// PlatformNames returns the platform names in catalog order.
func (g Game) PlatformNames() []string {
	return refNames(g.Platforms)
}

// ReleaseYear returns the UTC year of the first release, or 0 when unknown.
func (g Game) ReleaseYear() int {
	if g.FirstReleaseDate == nil {
		return 0
	}
	return time.Unix(*g.FirstReleaseDate, 0).UTC().Year()
}

// CoverImageID returns the cover image id, or "" when the game has no cover.
func (g Game) CoverImageID() string {
	if g.Cover == nil {
		return ""
	}
	return g.Cover.ImageID
}

func refNames(refs []NamedRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Name != "" {
			names = append(names, ref.Name)
		}
	}
	return names
}

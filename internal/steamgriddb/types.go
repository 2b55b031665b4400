package steamgriddb

// Game is an autocomplete search hit.
type Game struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Types       []string `json:"types"`
	Verified    bool     `json:"verified"`
	ReleaseDate *int64   `json:"release_date,omitempty"`
}

// Author is the uploader of an image.
type Author struct {
	Name    string `json:"name"`
	SteamID string `json:"steam64"`
	Avatar  string `json:"avatar"`
}

// Image is a grid, hero or logo candidate. Score is upvotes minus downvotes as reported by
// the API.
type Image struct {
	ID     int    `json:"id"`
	Score  int    `json:"score"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	NSFW   bool   `json:"nsfw"`
	Humor  bool   `json:"humor"`
	Mime   string `json:"mime"`
	Lang   string `json:"language"`
	URL    string `json:"url"`
	Thumb  string `json:"thumb"`
	Author Author `json:"author"`
}

// Filters narrows an image query. Zero values mean "do not filter on this axis".
type Filters struct {
	Styles     []string
	Dimensions []string
	NSFW       *bool
	Humor      *bool
}

// envelope is the common response wrapper.
type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Errors  []string `json:"errors"`
}

package hltb

import "math"

// imageBaseURL is where game_image fragments are served from.
const imageBaseURL = "https://howlongtobeat.com/games/"

// Candidate is one search hit as returned by the site. Durations are in seconds.
type Candidate struct {
	GameID       int    `json:"game_id"`
	GameName     string `json:"game_name"`
	GameImage    string `json:"game_image"`
	CompMain     int    `json:"comp_main"`
	CompPlus     int    `json:"comp_plus"`
	Comp100      int    `json:"comp_100"`
	CompAllCount int    `json:"comp_all_count"`
}

// Estimate is a completed lookup. Durations are in hours rounded to one decimal;
// zero means the site has no figure for that category.
type Estimate struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	ImagePath     string  `json:"image_path"`
	MainStory     float64 `json:"main_story"`
	MainExtra     float64 `json:"main_extra"`
	Completionist float64 `json:"completionist"`
}

// ImageURL returns the absolute URL of the game's image, or "" when there is none.
func (e Estimate) ImageURL() string {
	if e.ImagePath == "" {
		return ""
	}
	return imageBaseURL + e.ImagePath
}

// SecondsToHours converts a duration in seconds to hours rounded to one decimal place.
// Negative inputs are treated as zero.
func SecondsToHours(seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Round(float64(seconds)/3600*10) / 10
}

func (c Candidate) estimate() Estimate {
	return Estimate{
		ID:            c.GameID,
		Name:          c.GameName,
		ImagePath:     c.GameImage,
		MainStory:     SecondsToHours(c.CompMain),
		MainExtra:     SecondsToHours(c.CompPlus),
		Completionist: SecondsToHours(c.Comp100),
	}
}

package igdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverURL(t *testing.T) {
	client := NewClient("", "")

	tests := []struct {
		size CoverSize
		want string
	}{
		{size: "", want: "https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg"},
		{size: CoverSmall, want: "https://images.igdb.com/igdb/image/upload/t_cover_small/co1wyy.jpg"},
		{size: Cover720p, want: "https://images.igdb.com/igdb/image/upload/t_720p/co1wyy.jpg"},
		{size: Cover1080p, want: "https://images.igdb.com/igdb/image/upload/t_1080p/co1wyy.jpg"},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, client.CoverURL("co1wyy", tt.size))
		})
	}
}

func TestParseCoverSize(t *testing.T) {
	assert.Equal(t, Cover720p, ParseCoverSize("720p"))
	assert.Equal(t, CoverBig, ParseCoverSize("huge"))
	assert.Equal(t, CoverBig, ParseCoverSize(""))
}

func TestGameHelpers(t *testing.T) {
	// 2015-05-19 00:00:00 UTC, which is still 2015-05-18 in the Americas.
	released := int64(1431993600)
	newYear := int64(1609459200) // 2021-01-01 00:00:00 UTC

	game := Game{
		FirstReleaseDate: &released,
		Genres:           []NamedRef{{Name: "Adventure"}, {Name: ""}, {Name: "RPG"}},
		Platforms:        []NamedRef{{Name: "PC"}},
	}

	assert.Equal(t, 2015, game.ReleaseYear())
	assert.Equal(t, []string{"Adventure", "RPG"}, game.GenreNames())
	assert.Equal(t, []string{"PC"}, game.PlatformNames())
	assert.Empty(t, game.CoverImageID())

	game.FirstReleaseDate = &newYear
	assert.Equal(t, 2021, game.ReleaseYear())

	assert.Equal(t, 0, Game{}.ReleaseYear())
	assert.Equal(t, []string{}, Game{}.GenreNames())
}

package obsidian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"game", "game"},
		{"Role Playing", "Role-Playing"},
		{"#Roguelike", "Roguelike"},
		{"  genre/Hack and slash  ", "genre/Hack-and-slash"},
		{"Point-and-click & Adventure", "Point-and-click-and-Adventure"},
		{"foo --- bar", "foo-bar"},
		{"platform/ Nintendo Switch", "platform/Nintendo-Switch"},
		{"platform/PC (Microsoft Windows)", "platform/PC-Microsoft-Windows"},
		{"genre/Role-playing (RPG)", "genre/Role-playing-RPG"},
		{"genre/Beat 'em up", "genre/Beat-em-up"},
		{"genre//Puzzle/", "genre/Puzzle"},
		{"genre/()", "genre"},
		{"###", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.input))
		})
	}
}

func TestTagSet(t *testing.T) {
	tags := NewTagSet()
	tags.Add("game")
	tags.Add("#game")
	tags.Add("")
	tags.AddFormat("status/%s", "Backlog")
	tags.AddIf(false, "hidden")
	tags.AddIf(true, "platform/PC")

	assert.Equal(t, []string{"game", "platform/PC", "status/Backlog"}, tags.GetSorted())
}

func TestTagValue(t *testing.T) {
	assert.Equal(t, "Hack and slash-Beat 'em up", TagValue("Hack and slash/Beat 'em up"))
	assert.Equal(t, "genre/Hack-and-slash-Beat-em-up", NormalizeTag("genre/"+TagValue("Hack and slash/Beat 'em up")))
}

func TestDecadeTag(t *testing.T) {
	assert.Equal(t, "year/2010s", DecadeTag(2015))
	assert.Equal(t, "year/2020s", DecadeTag(2020))
	assert.Equal(t, "year/1990s", DecadeTag(1999))
	assert.Equal(t, "year/pre-1970s", DecadeTag(1962))
}

func TestTagsFromAny(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, TagsFromAny([]string{"a", "", "b"}))
	assert.Equal(t, []string{"a"}, TagsFromAny([]any{"a", 2, nil}))
	assert.Equal(t, []string{}, TagsFromAny("not a list"))
	assert.Equal(t, []string{}, TagsFromAny(nil))
}

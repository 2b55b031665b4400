package obsidian

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/backlog/internal/backlog"
	"github.com/lepinkainen/backlog/internal/fileutil"
)

// NoteType marks backlog notes in the frontmatter "type" field.
const NoteType = "game"

const addedLayout = "2006-01-02"

// WriteOptions controls how a game note is written.
type WriteOptions struct {
	Overwrite bool
	// LocalCover is a vault-relative image path that replaces the remote cover URL in the body.
	LocalCover string
}

// BuildGameNote renders an enriched game as a note.
func BuildGameNote(game *backlog.Game, opts WriteOptions) *Note {
	fm := NewFrontmatter()
	fm.Set("type", NoteType)
	fm.Set("title", game.Title)
	fm.Set("platform", game.Platform)
	fm.Set("priority", game.Priority)
	fm.Set("status", game.Status)
	fm.Set("genres", nonNil(game.Genres))
	if !game.AddedAt.IsZero() {
		fm.Set("added", game.AddedAt.Format(addedLayout))
	}
	if game.Slug != "" {
		fm.Set("slug", game.Slug)
	}

	SetIfPresent(fm, "rating", game.Rating)
	SetIfPresent(fm, "hours", game.HoursToBeat)
	SetIfPresent(fm, "completionist", game.Completionist)
	SetIfPresent(fm, "efficiency", game.Efficiency)
	SetIfPresent(fm, "cover", game.CoverURL)
	SetIfPresent(fm, "release_year", game.ReleaseYear)
	SetIfPresent(fm, "igdb_id", game.IGDBID)
	SetIfPresent(fm, "hltb_id", game.HLTBID)

	fm.Set("tags", gameTags(game).GetSorted())

	return &Note{Frontmatter: fm, Body: gameBody(game, opts)}
}

func gameTags(game *backlog.Game) *TagSet {
	tags := NewTagSet()
	tags.Add("game")
	tags.AddIf(game.Platform != "", "platform/"+TagValue(game.Platform))
	tags.AddIf(game.Status != "", "status/"+game.Status)
	tags.AddIf(game.Priority != "", "priority/"+game.Priority)
	for _, genre := range game.Genres {
		tags.Add("genre/" + TagValue(genre))
	}
	if game.ReleaseYear != nil {
		tags.Add(DecadeTag(*game.ReleaseYear))
	}
	return tags
}

func gameBody(game *backlog.Game, opts WriteOptions) string {
	var b strings.Builder

	switch {
	case opts.LocalCover != "":
		fmt.Fprintf(&b, "![[%s|250]]\n\n", opts.LocalCover)
	case game.CoverURL != nil:
		fmt.Fprintf(&b, "![](%s)\n\n", *game.CoverURL)
	}

	if game.Description != nil {
		b.WriteString(*game.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(">[!info]- Backlog\n")
	fmt.Fprintf(&b, "> **Rating**: %s\n", formatOptional(game.Rating, strconv.Itoa))
	fmt.Fprintf(&b, "> **Hours to beat**: %s\n", formatOptional(game.HoursToBeat, formatHours))
	fmt.Fprintf(&b, "> **Efficiency**: %s\n", formatOptional(game.Efficiency, formatScore))
	if len(game.Genres) > 0 {
		fmt.Fprintf(&b, "> **Genres**: %s\n", strings.Join(game.Genres, ", "))
	}
	b.WriteString("\n")

	var links []string
	if game.Slug != "" {
		links = append(links, fmt.Sprintf("- [IGDB](https://www.igdb.com/games/%s)", game.Slug))
	}
	if game.HLTBID != nil {
		links = append(links, fmt.Sprintf("- [HowLongToBeat](https://howlongtobeat.com/game/%d)", *game.HLTBID))
	}
	if len(links) > 0 {
		b.WriteString("## Links\n\n")
		b.WriteString(strings.Join(links, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

// WriteGameNote writes the note to <dir>/<title>.md and returns the path and whether the
// file was written. An existing note is kept unless opts.Overwrite is set.
func WriteGameNote(dir string, game *backlog.Game, opts WriteOptions) (string, bool, error) {
	if game == nil || strings.TrimSpace(game.Title) == "" {
		return "", false, errors.New("game note needs a title")
	}

	data, err := BuildGameNote(game, opts).Build()
	if err != nil {
		return "", false, err
	}

	path := fileutil.GetMarkdownFilePath(game.Title, dir)
	written, err := fileutil.WriteFileWithOverwrite(path, data, 0o644, opts.Overwrite)
	if err != nil {
		return "", false, fmt.Errorf("failed to write note %s: %w", path, err)
	}
	return path, written, nil
}

// ParseGameNote reads a backlog note back into a Game. Notes without type "game" yield
// nil without error.
func ParseGameNote(content []byte) (*backlog.Game, error) {
	note, err := ParseMarkdown(content)
	if err != nil {
		return nil, err
	}

	fm := note.Frontmatter
	if fm.GetString("type") != NoteType {
		return nil, nil
	}

	game := &backlog.Game{
		Title:    fm.GetString("title"),
		Slug:     fm.GetString("slug"),
		Platform: fm.GetString("platform"),
		Priority: fm.GetString("priority"),
		Status:   fm.GetString("status"),
		Genres:   fm.GetStringArray("genres"),
	}

	if v, ok := fm.GetInt("rating"); ok {
		game.Rating = &v
	}
	if v, ok := fm.GetFloat("hours"); ok {
		game.HoursToBeat = &v
	}
	if v, ok := fm.GetFloat("completionist"); ok {
		game.Completionist = &v
	}
	if v, ok := fm.GetFloat("efficiency"); ok {
		game.Efficiency = &v
	}
	if v := fm.GetString("cover"); v != "" {
		game.CoverURL = &v
	}
	if v, ok := fm.GetInt("release_year"); ok {
		game.ReleaseYear = &v
	}
	if v, ok := fm.GetInt("igdb_id"); ok {
		id := int64(v)
		game.IGDBID = &id
	}
	if v, ok := fm.GetInt("hltb_id"); ok {
		game.HLTBID = &v
	}

	switch added := rawValue(fm, "added").(type) {
	case string:
		if t, err := time.Parse(addedLayout, added); err == nil {
			game.AddedAt = t
		}
	case time.Time:
		game.AddedAt = added
	}

	return game, nil
}

func rawValue(fm *Frontmatter, key string) any {
	v, _ := fm.Get(key)
	return v
}

func formatOptional[T any](v *T, format func(T) string) string {
	if v == nil {
		return "unknown"
	}
	return format(*v)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package dashboard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/backlog/internal/fileutil"
	"github.com/lepinkainen/backlog/internal/obsidian"
)

// NoteFilename is the generated dashboard note inside the backlog folder.
const NoteFilename = "Backlog Dashboard.md"

// BuildNote renders the Dataview dashboard for notes stored in folder (vault relative).
func BuildNote(folder string) ([]byte, error) {
	source := fmt.Sprintf("%q AND #game", folder)

	fm := obsidian.NewFrontmatter()
	fm.Set("title", "Backlog Dashboard")
	fm.Set("tags", []string{"dashboard", "game"})

	var b strings.Builder
	b.WriteString("# Backlog Dashboard\n\n")

	b.WriteString("## By status\n\n```dataview\n")
	fmt.Fprintf(&b, "TABLE length(rows) AS Games\nFROM %s\nGROUP BY status\n```\n\n", source)

	b.WriteString("## Best value\n\n```dataview\n")
	fmt.Fprintf(&b, "TABLE platform, rating, hours, efficiency\nFROM %s\nWHERE efficiency AND status != \"Completed\"\nSORT efficiency DESC\nLIMIT %d\n```\n\n", source, DefaultTopLimit)

	b.WriteString("## Quick wins\n\n```dataview\n")
	fmt.Fprintf(&b, "TABLE platform, rating, hours\nFROM %s\nWHERE rating >= %d AND hours > 0 AND status != \"Completed\"\nSORT hours ASC\nLIMIT %d\n```\n\n", source, DefaultQuickWinRating, DefaultTopLimit)

	b.WriteString("## Now playing\n\n```dataview\n")
	fmt.Fprintf(&b, "LIST\nFROM %s\nWHERE status = \"Playing\"\n```\n", source)

	return (&obsidian.Note{Frontmatter: fm, Body: b.String()}).Build()
}

// WriteNote writes the dashboard note into dir, replacing any previous version.
func WriteNote(dir, folder string) (string, error) {
	data, err := BuildNote(folder)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, NoteFilename)
	if _, err := fileutil.WriteFileWithOverwrite(path, data, 0o644, true); err != nil {
		return "", fmt.Errorf("failed to write dashboard note: %w", err)
	}
	return path, nil
}

package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/backlog/internal/datastore"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render writes the summary as terminal text.
func Render(w io.Writer, s *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d games", headingStyle.Render("Backlog"), s.Total)
	if s.Skipped > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d notes skipped)", s.Skipped)))
	}
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("By status") + "\n")
	for _, status := range s.Statuses() {
		name := status
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(&b, "  %-12s %d\n", name, s.ByStatus[status])
	}

	writeRows(&b, "Best value (rating per hour)", s.Top)
	writeRows(&b, "Quick wins (highly rated, shortest first)", s.QuickWins)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRows(b *strings.Builder, title string, rows []datastore.GameRow) {
	b.WriteString("\n" + headingStyle.Render(title) + "\n")
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  nothing yet") + "\n")
		return
	}
	for i, row := range rows {
		fmt.Fprintf(b, "  %2d. %s %s\n", i+1, row.Title,
			dimStyle.Render(fmt.Sprintf("[%s] rating %s, %s, efficiency %s",
				row.Platform, optionalInt(row.Rating), optionalHours(row.Hours), optionalScore(row.Efficiency))))
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}

func optionalHours(v *float64) string {
	if v == nil {
		return "?h"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "h"
}

func optionalScore(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

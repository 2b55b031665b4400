// Package tui provides the interactive candidate picker.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/backlog/internal/igdb"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction is what the user did in the picker.
type SelectionAction int

const (
	ActionNone SelectionAction = iota
	ActionSelected
	ActionSkipped
	// ActionStopped means the user wants to abandon the whole command.
	ActionStopped
)

// SelectionResult holds the outcome of SelectGame.
type SelectionResult struct {
	Action    SelectionAction
	Selection *igdb.Game
}

type gameItem struct {
	igdb.Game
}

func (i gameItem) Title() string {
	return headline(i.Game)
}

func (i gameItem) FilterValue() string {
	return i.Name
}

func (i gameItem) Description() string {
	if i.Summary == nil {
		return ""
	}
	return *i.Summary
}

func headline(g igdb.Game) string {
	if year := g.ReleaseYear(); year > 0 {
		return fmt.Sprintf("%s (%d)", g.Name, year)
	}
	return g.Name
}

type itemStyles struct {
	normal    lipgloss.Style
	selected  lipgloss.Style
	title     lipgloss.Style
	rating    lipgloss.Style
	platforms lipgloss.Style
	summary   lipgloss.Style
}

func newItemStyles() itemStyles {
	container := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	return itemStyles{
		normal: container,
		selected: container.Copy().
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237")),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254")),
		rating:    lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		platforms: lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
	}
}

type gameDelegate struct {
	styles itemStyles
}

func (d gameDelegate) Height() int                         { return 4 }
func (d gameDelegate) Spacing() int                        { return 1 }
func (d gameDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d gameDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	game, ok := item.(gameItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	content := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.title.Render(headline(game.Game)),
		d.styles.platforms.Render(truncate(platformLine(game.Game), width)),
		d.styles.rating.Render(ratingLine(game.Game)),
		d.styles.summary.Render(truncate(game.Description(), width)),
	)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

func platformLine(g igdb.Game) string {
	platforms := g.PlatformNames()
	if len(platforms) == 0 {
		return "Unknown platforms"
	}
	return strings.Join(platforms, ", ")
}

func ratingLine(g igdb.Game) string {
	if g.AggregatedRating == nil {
		return "No critic rating"
	}
	return "Critics " + strconv.FormatFloat(*g.AggregatedRating, 'f', 0, 64) + "/100"
}

type model struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newModel(query string, games []igdb.Game) *model {
	items := make([]list.Item, len(games))
	for i, game := range games {
		items[i] = gameItem{Game: game}
	}

	l := list.New(items, gameDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{list: l, query: query, result: SelectionResult{Action: ActionNone}}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(gameItem); ok {
				game := selected.Game
				m.result = SelectionResult{Action: ActionSelected, Selection: &game}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(clamp(defaultListWidth, msg.Width-4, 40), clamp(defaultListHeight, msg.Height-6, 5))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Games matching: %s", m.query)),
		m.list.View(),
		helpStyle.Render("Up/Down navigate | Enter select | s skip | q stop"),
	)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectGame shows the catalog candidates for query and returns the user's choice. An empty
// candidate list is reported as skipped without starting the UI.
func SelectGame(query string, games []igdb.Game) (SelectionResult, error) {
	if len(games) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	finalModel, err := runProgram(newModel(query, games))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}
	return SelectionResult{}, errors.New("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}

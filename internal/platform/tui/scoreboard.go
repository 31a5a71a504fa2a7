package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxScores          = 100
)

// ScoreboardKeyMap holds the scoreboard bindings and feeds the help view.
type ScoreboardKeyMap struct {
	Up, Down           key.Binding
	NextGame, PrevGame key.Binding
	Back, Quit         key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextGame, k.PrevGame}, {k.Back, k.Quit}}
}

func binding(keys []string, helpKey, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultScoreboardKeyMap uses arrows or vim keys to scroll and tab to
// switch games.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       binding([]string{"up", "k"}, "up/k", "scroll up"),
		Down:     binding([]string{"down", "j"}, "down/j", "scroll down"),
		NextGame: binding([]string{"tab", "right", "l"}, "tab", "next game"),
		PrevGame: binding([]string{"shift+tab", "left", "h"}, "S-tab", "prev game"),
		Back:     binding([]string{"esc", "b"}, "esc/b", "back"),
		Quit:     binding([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle     = mutedStyle.Italic(true).Padding(2, 4)
)

// ScoreboardModel shows the stored scores of one game at a time. Wide
// terminals list the games in a sidebar, narrow ones in a tab line.
type ScoreboardModel struct {
	store      *storage.Store
	games      []registry.GameInfo
	gameCursor int
	scores     []storage.ScoreEntry
	stats      *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	showSidebar   bool
	embedded      bool // back returns to the caller instead of quitting
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens on the first registered game. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store: store,
		games: registry.List(),
		help:  help.New(),
		keys:  DefaultScoreboardKeyMap(),
	}
	m.layout(width, height)
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}
	return m
}

// layout rebuilds the table for a terminal of width x height.
func (m *ScoreboardModel) layout(width, height int) {
	m.width, m.height = width, height
	m.showSidebar = width >= minWidthForSidebar
	m.help.Width = width

	dateWidth := 14
	avail := width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}
	if spare := avail - 42; spare > 0 {
		dateWidth += min(spare, 6)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Ticks", Width: 8},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
		table.WithStyles(styles),
	)
	m.fillTable()
}

// loadScores reads the top scores and the aggregate stats of gameID.
// Read errors show as an empty board.
func (m *ScoreboardModel) loadScores(gameID string) {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		m.scores, _ = m.store.TopScores(gameID, maxScores)
		m.stats, _ = m.store.GetGameStats(gameID)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Ticks),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleGame(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.loadScores(m.games[m.gameCursor].ID)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.cycleGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.cycleGame(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}

	body := m.table.View()
	if len(m.scores) == 0 {
		body = emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	body = borderStyle.Render(body)

	parts := []string{centerText(highlightStyle.Render(title), m.width), ""}
	if m.showSidebar {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		parts = append(parts, centerText(m.renderTabs(), m.width), "", body)
	}
	if line := m.statsLine(); line != "" {
		parts = append(parts, mutedStyle.Render(line))
	}
	parts = append(parts, mutedStyle.Render(m.help.View(m.keys)))

	return strings.Join(parts, "\n")
}

func (m ScoreboardModel) renderSidebar() string {
	lines := []string{"Games", strings.Repeat("-", sidebarWidth-4)}
	maxLen := sidebarWidth - 6
	for i, g := range m.games {
		name := g.Title
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.gameCursor {
			lines = append(lines, highlightStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return borderStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m ScoreboardModel) renderTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = highlightStyle.Render("[" + g.Title + "]")
		} else {
			tabs[i] = mutedStyle.Render(" " + g.Title + " ")
		}
	}
	if line := strings.Join(tabs, " "); lipgloss.Width(line) <= m.width-4 {
		return line
	}
	return "< " + m.games[m.gameCursor].Title + " >"
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games, average %.1f, longest run %d ticks",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.LongestRun)
}

// IsGoingBack reports whether the user left the board with back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the board in its own program. It reports whether
// the user went back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

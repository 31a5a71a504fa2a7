package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/storage"
)

// MenuItem is one line of the mode picker.
type MenuItem struct {
	GameID string
	Title  string
	Hint   string // shown under the list while the item is highlighted
	Best   int    // stored high score, 0 if none
}

// MenuModel picks a game (one per controller mode) or opens the scoreboard.
// Standalone, it ends its program on any choice; a session reads the
// choice through Selected, WantsScoreboard and IsQuitting instead.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	menuCursor     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuFooter = "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"

// NewMenuModel lists every registered game with its best score. store may
// be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Hint: g.Description}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render("  B U G S  "),
		"",
		"Collect the target, dodge the bugs",
		"",
	}
	for i, item := range m.items {
		label := item.Title
		if item.Best > 0 {
			label += fmt.Sprintf("  (best %d)", item.Best)
		}
		if i == m.cursor {
			lines = append(lines, menuCursor.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	if len(m.items) > 0 && m.items[m.cursor].Hint != "" {
		lines = append(lines, "", menuHintStyle.Render(m.items[m.cursor].Hint))
	}
	lines = append(lines, "", menuFooter)

	for i, l := range lines {
		lines[i] = centerText(l, width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by any resize seen so far.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text to sit in the middle of width columns. Styled
// text is measured by its visible width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what a standalone menu run chose.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program until a choice is made.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.openScoreboard:
		res.WantsScoreboard = true
	case m.selected != nil:
		res.GameID = m.selected.GameID
	default:
		res.Quit = true
	}
	return res, nil
}

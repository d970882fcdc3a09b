package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
	"github.com/bunTree/BrickFast/internal/layout"
)

// Selection holds the user's choice from the level selector.
type Selection struct {
	Endless bool
	Level   int // 1-based
}

const (
	modeCampaign = iota
	modeEndless
	modeSelectLevel
	modeCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorOrange.Hex()))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorCyan.Hex()))
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// LevelSelectModel lets users choose campaign, endless or a starting level.
type LevelSelectModel struct {
	catalog       *layout.Catalog
	keys          MenuKeyMap
	help          help.Model
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	selection     Selection
	choosing      bool
	quitting      bool
}

// NewLevelSelectModel creates a selector over the catalog.
func NewLevelSelectModel(catalog *layout.Catalog, width, height int) LevelSelectModel {
	return LevelSelectModel{
		catalog:  catalog,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
		choosing: true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inLevelSelect {
		return m.handleLevelKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(modeCount-1, m.cursor+1)
	case key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case modeCampaign:
			return m.choose(Selection{Level: 1})
		case modeEndless:
			return m.choose(Selection{Endless: true, Level: 1})
		case modeSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	}
	return m, nil
}

func (m LevelSelectModel) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.levelCursor = max(0, m.levelCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.levelCursor = min(m.catalog.Len()-1, m.levelCursor+1)
	case key.Matches(msg, m.keys.Back):
		m.inLevelSelect = false
	case key.Matches(msg, m.keys.Select):
		return m.choose(Selection{Level: m.levelCursor + 1})
	}
	return m, nil
}

func (m LevelSelectModel) choose(s Selection) (tea.Model, tea.Cmd) {
	m.selection = s
	m.choosing = false
	return m, tea.Quit
}

// View renders the mode or level list.
func (m LevelSelectModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevels()
	}
	return m.viewModes()
}

func (m LevelSelectModel) viewModes() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B R I C K F A S T", m.width))
	b.WriteString("\n\n")

	modes := []string{
		fmt.Sprintf("Campaign (%d levels)", m.catalog.Len()),
		"Endless Mode",
		"Select Level...",
	}
	for i, mode := range modes {
		b.WriteString(centerText(cursorFor(i == m.cursor)+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m LevelSelectModel) viewLevels() string {
	n := m.catalog.Len()
	visible := n
	if m.height > 8 {
		visible = min(n, m.height-6)
	}
	first := core.Clamp(m.levelCursor-visible/2, 0, max(0, n-visible))

	var list strings.Builder
	for i := first; i < first+visible; i++ {
		line := fmt.Sprintf("%s%2d. %s", cursorFor(i == m.levelCursor), i+1, m.catalog.At(i).Name)
		if i == m.levelCursor {
			line = cursorStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	l := m.catalog.At(m.levelCursor)
	preview := previewStyle.Render(strings.Join(l.Preview(game.PreviewBrick, ' '), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", preview)
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		titleStyle.Render("SELECT LEVEL"),
		"",
		body,
		m.help.View(m.keys),
	)
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *Selection {
	if m.choosing || m.quitting {
		return nil
	}
	return &m.selection
}


func cursorFor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunLevelSelector shows the selector and returns the choice, or nil when the
// user quit.
func RunLevelSelector(catalog *layout.Catalog, cfg core.RuntimeConfig) (*Selection, error) {
	p := tea.NewProgram(
		NewLevelSelectModel(catalog, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LevelSelectModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}

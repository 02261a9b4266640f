package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// T2048Mode represents the selected game mode.
type T2048Mode int

const (
	T2048ModeCampaign T2048Mode = iota
	T2048ModeEndless
)

// T2048Selection holds the user's selection from the 2048 menu.
type T2048Selection struct {
	Mode  T2048Mode
	Level int // 0 = start from beginning, otherwise a 1-based level
}

// GameID returns the registered variant for the selection.
func (s T2048Selection) GameID() string {
	if s.Mode == T2048ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// NewGame creates the variant for the selection and applies the start level.
func (s T2048Selection) NewGame() (registry.Game, error) {
	game, err := registry.Create(s.GameID())
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*t2048.Game); ok && s.Level > 0 {
		g.SetStartLevel(s.Level)
	}
	return game, nil
}

// T2048ModeModel lets users choose game mode and starting level for 2048.
type T2048ModeModel struct {
	levels        []t2048.Level
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     T2048Selection
	choosing      bool
	quitting      bool
	back          bool
}

// NewT2048ModeModel creates a mode selector listing the given campaign levels.
func NewT2048ModeModel(width, height int, levels []t2048.Level) T2048ModeModel {
	return T2048ModeModel{
		levels:    levels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m T2048ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m T2048ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m T2048ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m T2048ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 { // Campaign, Endless, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choosing = false
			m.selection = T2048Selection{Mode: T2048ModeCampaign}
			return m, tea.Quit
		case 1:
			m.choosing = false
			m.selection = T2048Selection{Mode: T2048ModeEndless}
			return m, tea.Quit
		case 2:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m T2048ModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = T2048Selection{
			Mode:  T2048ModeCampaign,
			Level: m.levelCursor + 1,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m T2048ModeModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m T2048ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	modes := []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		"Endless Mode",
		"Select Level...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m T2048ModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	names := t2048.LevelNames(m.levels)
	targets := t2048.LevelTargets(m.levels)

	for i, name := range names {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %-14s (Target: %d)", cursor, i+1, name, targets[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m T2048ModeModel) Selected() *T2048Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m T2048ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m T2048ModeModel) WantsBack() bool {
	return m.back
}

// loadCampaignLevels reads the level list the next game will use.
// A broken custom config still yields the default levels.
func loadCampaignLevels(cfg core.RuntimeConfig) []t2048.Level {
	c, _ := config.LoadT2048(cfg.ConfigPath)
	return t2048.CampaignLevels(c)
}

// RunT2048ModeSelector runs the 2048 mode selection and returns the selection.
// A nil selection means the user went back or quit.
func RunT2048ModeSelector(cfg core.RuntimeConfig) (*T2048Selection, core.RuntimeConfig, error) {
	model := NewT2048ModeModel(cfg.ScreenW, cfg.ScreenH, loadCampaignLevels(cfg))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(T2048ModeModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}

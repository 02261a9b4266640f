package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func pressMenu(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(nil, testRuntimeConfig())

	ids := make(map[string]bool)
	for _, item := range m.items {
		ids[item.GameID] = true
	}
	for _, want := range []string{"2048", "2048_mini", "2048_large"} {
		if !ids[want] {
			t.Errorf("menu missing %q", want)
		}
	}
	if ids["2048_endless"] {
		t.Error("endless variant should be reached through the mode selector")
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(nil, testRuntimeConfig())

	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyUp}) // stays at the top
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != "2048" {
		t.Fatalf("Selected = %+v, want 2048", m.Selected())
	}

	m = NewMenuModel(nil, testRuntimeConfig())
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveResult(storage.Result{GameID: "2048_mini", Score: 512}); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	m := NewMenuModel(store, testRuntimeConfig())
	for _, item := range m.items {
		if item.GameID == "2048_mini" && item.HighScore != 512 {
			t.Errorf("HighScore = %d, want 512", item.HighScore)
		}
	}
}

func testLevels() []t2048.Level {
	return []t2048.Level{
		{ID: 1, Name: "Warmup", Target: 64},
		{ID: 2, Name: "Climb", Target: 128},
	}
}

func pressMode(t *testing.T, m T2048ModeModel, msg tea.KeyMsg) T2048ModeModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(T2048ModeModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModeSelector(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		mode   T2048Mode
		level  int
		gameID string
	}{
		{"campaign", []tea.KeyMsg{enter}, T2048ModeCampaign, 0, "2048"},
		{"endless", []tea.KeyMsg{down, enter}, T2048ModeEndless, 0, "2048_endless"},
		{"level two", []tea.KeyMsg{down, down, enter, down, enter}, T2048ModeCampaign, 2, "2048"},
		{"level cursor clamps", []tea.KeyMsg{down, down, enter, down, down, down, enter}, T2048ModeCampaign, 2, "2048"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewT2048ModeModel(80, 24, testLevels())
			for _, k := range tt.keys {
				m = pressMode(t, m, k)
			}
			sel := m.Selected()
			if sel == nil {
				t.Fatal("no selection")
			}
			if sel.Mode != tt.mode || sel.Level != tt.level {
				t.Errorf("selection = %+v, want mode %v level %d", *sel, tt.mode, tt.level)
			}
			if sel.GameID() != tt.gameID {
				t.Errorf("GameID = %q, want %q", sel.GameID(), tt.gameID)
			}
		})
	}
}

func TestModeSelectorBack(t *testing.T) {
	m := NewT2048ModeModel(80, 24, testLevels())
	m = pressMode(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressMode(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressMode(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inLevelSelect {
		t.Fatal("expected level list")
	}

	m = pressMode(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inLevelSelect || m.WantsBack() {
		t.Fatal("esc in level list should return to mode list")
	}

	m = pressMode(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() {
		t.Error("esc in mode list should go back")
	}
	if m.Selected() != nil {
		t.Error("going back should not select")
	}
}

func TestSelectionNewGameAppliesStartLevel(t *testing.T) {
	game, err := T2048Selection{Mode: T2048ModeCampaign, Level: 3}.NewGame()
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g := game.(*t2048.Game)
	g.SetLogger(quietLogger())
	g.Reset(testRuntimeConfig())

	if lvl := g.Level(); lvl == nil || lvl.ID != 3 {
		t.Errorf("Level = %+v, want level 3", lvl)
	}
}

func TestScoreRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	rows := scoreRows([]storage.ScoreEntry{
		{Score: 2000, MaxTile: 256, Moves: 180, Won: true, CreatedAt: at},
		{Score: 900, MaxTile: 128, Moves: 95, CreatedAt: at},
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	want := []string{"#1*", "2000", "256", "180", "Mar 04 15:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "#2" {
		t.Errorf("rows[1][0] = %q, want #2", rows[1][0])
	}
}

func TestScoreboardCyclesVariants(t *testing.T) {
	store := openTestStore(t)
	m := NewScoreboardModel(store, 100, 30)
	n := len(m.games)
	if n < 2 {
		t.Fatalf("need at least two variants, got %d", n)
	}

	m.cycleGame(-1)
	if m.gameCursor != n-1 {
		t.Errorf("cursor = %d, want %d", m.gameCursor, n-1)
	}
	m.cycleGame(1)
	if m.gameCursor != 0 {
		t.Errorf("cursor = %d, want 0", m.gameCursor)
	}
	if m.stats.GameID != m.games[0].ID {
		t.Errorf("stats for %q, want %q", m.stats.GameID, m.games[0].ID)
	}
}

func TestStatsLine(t *testing.T) {
	if got := statsLine(storage.GameStats{}); got != "No games played" {
		t.Errorf("statsLine(empty) = %q", got)
	}
	got := statsLine(storage.GameStats{GamesCount: 2, Wins: 1, HighScore: 300, BestTile: 64, AvgScore: 200})
	if want := "Games: 2  Wins: 1  Best: 300  Best tile: 64  Avg: 200"; got != want {
		t.Errorf("statsLine = %q, want %q", got, want)
	}
}

func pressSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, testRuntimeConfig(), quietLogger())

	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewModeSelect {
		t.Fatalf("view = %v, want mode selector", m.view)
	}

	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}

	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScoreboard {
		t.Fatalf("view = %v, want scoreboard", m.view)
	}
	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}

	// Menu order is 2048, 2048_large, 2048_mini
	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatalf("view = %v, want game", m.view)
	}
	if id := m.gameModel.game.ID(); id != "2048_mini" {
		t.Errorf("game = %q, want 2048_mini", id)
	}

	m = pressSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in game should end the session")
	}
}

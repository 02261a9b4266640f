package t2048

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       seed,
		Difficulty: "fixed",
	}
}

func startGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.SetLogger(log.New(io.Discard))
	g.Reset(testConfig(seed))
	return g
}

// setBoard replaces the game's model with one holding rows, keeping threshold and source.
func setBoard(t *testing.T, g *Game, rows [][]int) {
	t.Helper()
	b, err := engine.NewBoardFromRows(rows)
	if err != nil {
		t.Fatalf("NewBoardFromRows() failed: %v", err)
	}
	g.sink = &eventSink{}
	g.model = engine.New(0, g.model.Threshold(), g.sink,
		engine.WithBoard(b),
		engine.WithSource(g.rng),
		engine.WithLogger(g.logger),
	)
	g.board = g.model.Board()
	g.checkScreenSize()
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func countTiles(b *engine.Board) int {
	n := 0
	for _, row := range b.Rows() {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q is not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v.ID, err)
		}
		if g.ID() != v.ID || g.Title() != v.Title {
			t.Errorf("Create(%q) = %s/%s, want %s/%s", v.ID, g.ID(), g.Title(), v.ID, v.Title)
		}
	}
}

func TestResetPlacesTwoStartingTiles(t *testing.T) {
	g := startGame(t, New(), 7)

	b := g.Board()
	if countTiles(b) != 2 {
		t.Fatalf("tile count = %d, want 2\n%s", countTiles(b), b)
	}
	for _, row := range b.Rows() {
		for _, v := range row {
			if v != 0 && v != 2 {
				t.Errorf("starting tile = %d, want 2", v)
			}
		}
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, want 0", g.State().Score)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := startGame(t, New(), 12345)
	g2 := startGame(t, New(), 12345)

	if !g1.Board().Equal(g2.Board()) {
		t.Errorf("same seed should produce the same initial board:\n%s\nvs\n%s", g1.Board(), g2.Board())
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		g1.Step(press(a))
		g2.Step(press(a))
	}
	if !g1.Board().Equal(g2.Board()) {
		t.Errorf("same seed and input should stay in lockstep:\n%s\nvs\n%s", g1.Board(), g2.Board())
	}
}

func TestMoveMergesAndInsertsTile(t *testing.T) {
	g := startGame(t, NewEndless(), 1)
	setBoard(t, g, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	b := g.Board()
	if v, _ := b.Get(0, 0); v != 4 {
		t.Errorf("Get(0, 0) = %d, want 4\n%s", v, b)
	}
	if countTiles(b) != 2 {
		t.Errorf("tile count = %d, want merged tile plus one new tile\n%s", countTiles(b), b)
	}
	if g.State().Score != 4 {
		t.Errorf("Score = %d, want 4", g.State().Score)
	}
	if g.sink.lastScore() != 4 {
		t.Errorf("listener score = %d, want 4", g.sink.lastScore())
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}

	if !g.animating || g.animationPhase != PhaseSlide {
		t.Fatal("an accepted move should start the slide animation")
	}
	if len(g.animations) != 2 || !g.animations[0].Merged {
		t.Errorf("animations = %+v, want both halves of the merge", g.animations)
	}
	if g.pendingNewTile == nil {
		t.Error("inserted tile should wait for the pop phase")
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := startGame(t, NewEndless(), 1)
	rows := [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	setBoard(t, g, rows)
	before := g.Board()

	g.Step(press(core.ActionLeft))

	if !g.Board().Equal(before) {
		t.Errorf("rejected move changed the board:\n%s", g.Board())
	}
	if g.moves != 0 || g.animating {
		t.Errorf("rejected move should not count or animate (moves=%d)", g.moves)
	}
}

func TestGameOverAfterLastInsert(t *testing.T) {
	g := startGame(t, NewEndless(), 3)
	setBoard(t, g, [][]int{
		{0, 8, 16, 32},
		{64, 128, 256, 512},
		{1024, 2048, 4096, 8192},
		{16384, 32768, 65536, 131072},
	})

	g.Step(press(core.ActionLeft))

	if !g.gameOver {
		t.Fatalf("board should be stuck after the insert:\n%s", g.Board())
	}
	if !g.reached {
		t.Error("tiles above the threshold should be announced in endless mode")
	}
	st := g.State()
	if !st.GameOver || !st.Won {
		t.Errorf("State() = %+v, want GameOver and Won", st)
	}

	// Input after game over is ignored.
	before := g.Board()
	g.Step(press(core.ActionRight))
	if !g.Board().Equal(before) {
		t.Error("moves after game over should be ignored")
	}
}

func TestCampaignProgression(t *testing.T) {
	g := startGame(t, New(), 42)
	setBoard(t, g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	if !g.levelCleared {
		t.Fatal("reaching 128 should clear level 1")
	}
	if countTiles(g.Board()) != 1 {
		t.Errorf("no tile should be inserted after a winning move\n%s", g.Board())
	}
	if !g.State().Paused {
		t.Error("State should be paused while the level banner is shown")
	}

	g.levelClearTicks = levelClearDelay - 1
	g.Step(core.NewInputFrame())

	if g.levelIndex != 1 {
		t.Fatalf("should advance to level 2, got level %d", g.levelIndex+1)
	}
	if g.model.Threshold() != 256 {
		t.Errorf("Threshold = %d, want 256", g.model.Threshold())
	}
	if countTiles(g.Board()) != 2 {
		t.Errorf("advancing should insert the pending tile\n%s", g.Board())
	}
	if g.State().Score != 128 {
		t.Errorf("score should carry over, got %d", g.State().Score)
	}
}

func TestCampaignSkipsLevelAlreadyMet(t *testing.T) {
	g := startGame(t, New(), 42)
	// 256 already meets level 2's target once 64+64 clears level 1.
	setBoard(t, g, [][]int{
		{64, 64, 0, 0},
		{256, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))
	if !g.levelCleared || g.levelIndex != 0 {
		t.Fatalf("level 1 should clear first, levelCleared=%v level=%d", g.levelCleared, g.levelIndex+1)
	}

	g.levelClearTicks = levelClearDelay - 1
	g.Step(core.NewInputFrame())

	if g.levelIndex != 1 {
		t.Fatalf("should advance to level 2, got level %d", g.levelIndex+1)
	}
	if !g.levelCleared {
		t.Fatal("level 2 target is already on the board and should clear without a move")
	}
	if countTiles(g.Board()) != 2 {
		t.Errorf("no tile should be inserted while the level is cleared\n%s", g.Board())
	}

	g.levelClearTicks = levelClearDelay - 1
	g.Step(core.NewInputFrame())

	if g.levelIndex != 2 || g.levelCleared {
		t.Fatalf("should be playing level 3, got level %d cleared=%v", g.levelIndex+1, g.levelCleared)
	}
	if g.model.Threshold() != 512 {
		t.Errorf("Threshold = %d, want 512", g.model.Threshold())
	}
	if countTiles(g.Board()) != 3 {
		t.Errorf("advancing should insert the pending tile\n%s", g.Board())
	}
}

func TestCampaignComplete(t *testing.T) {
	g := New()
	g.SetStartLevel(10)
	startGame(t, g, 42)
	setBoard(t, g, [][]int{
		{4096, 4096, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))
	g.levelClearTicks = levelClearDelay - 1
	g.Step(core.NewInputFrame())

	if !g.won {
		t.Fatal("clearing the last level should complete the campaign")
	}
	if st := g.State(); !st.GameOver || !st.Won {
		t.Errorf("State() = %+v, want GameOver and Won", st)
	}
}

func TestEndlessAnnouncesThresholdAndContinues(t *testing.T) {
	g := startGame(t, NewEndless(), 42)
	setBoard(t, g, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	if g.levelCleared || g.won {
		t.Error("endless mode has no level clear or campaign win")
	}
	if !g.reached {
		t.Error("reaching 2048 should be announced")
	}
	if countTiles(g.Board()) != 2 {
		t.Errorf("play continues, so a tile should be inserted\n%s", g.Board())
	}
	if st := g.State(); st.GameOver || !st.Won {
		t.Errorf("State() = %+v, want Won without GameOver", st)
	}
}

func TestStartLevel(t *testing.T) {
	g := New()
	g.SetStartLevel(3)
	startGame(t, g, 1)

	lvl := g.Level()
	if lvl == nil || lvl.ID != 3 {
		t.Fatalf("Level() = %+v, want level 3", lvl)
	}
	if g.model.Threshold() != 512 {
		t.Errorf("Threshold = %d, want 512", g.model.Threshold())
	}

	// The selection is consumed by one Reset.
	g.Reset(testConfig(1))
	if g.Level().ID != 1 {
		t.Errorf("second Reset should start at level 1, got %d", g.Level().ID)
	}
}

func TestVariantDimensions(t *testing.T) {
	tests := []struct {
		id        string
		dimension int
		threshold int
	}{
		{"2048_endless", 4, 2048},
		{"2048_mini", 3, 256},
		{"2048_large", 5, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rg, err := registry.Create(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			g := startGame(t, rg.(*Game), 1)

			if g.Board().Dimension() != tt.dimension {
				t.Errorf("Dimension = %d, want %d", g.Board().Dimension(), tt.dimension)
			}
			if g.model.Threshold() != tt.threshold {
				t.Errorf("Threshold = %d, want %d", g.model.Threshold(), tt.threshold)
			}
			if g.tooSmall {
				t.Error("80x24 should fit every variant")
			}
		})
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := startGame(t, NewEndless(), 5)
	setBoard(t, g, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("P should pause")
	}

	g.Step(press(core.ActionLeft))
	if g.moves != 0 {
		t.Error("moves while paused should be ignored")
	}

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionLeft))
	if g.moves != 1 {
		t.Errorf("moves = %d after unpausing, want 1", g.moves)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.SetLogger(log.New(io.Discard))
	cfg := testConfig(1)
	cfg.ScreenW = 20
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("a too small screen should pause the game")
	}

	s := core.NewScreen(20, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "Window too small") {
		t.Errorf("expected the resize hint, got:\n%s", s)
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resizing to 80x24 should resume")
	}
}

func TestRenderScoreAndTileColors(t *testing.T) {
	g := startGame(t, NewEndless(), 9)
	setBoard(t, g, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "SCORE: 0") {
		t.Errorf("missing score line:\n%s", s)
	}

	g.Step(press(core.ActionLeft))
	for range slideAnimationDuration + popAnimationDuration {
		g.Step(core.NewInputFrame())
	}
	if g.animating {
		t.Fatal("animation should have finished")
	}

	g.Render(s)
	if !strings.Contains(s.String(), "SCORE: 4") {
		t.Errorf("score line not updated:\n%s", s)
	}

	// Cell (0, 0) interior starts one column right of the board's left edge.
	boardW, _ := boardSize(4)
	x := (80-boardW)/2 + 1 + (cellWidth-2)/2
	y := hudHeight + 2
	if c := s.GetCell(x, y); c.Rune != '4' || c.Color != TileColor(4) {
		t.Errorf("GetCell(%d, %d) = %+v, want '4' in %v", x, y, c, TileColor(4))
	}
}

func TestSnapshot(t *testing.T) {
	g := startGame(t, New(), 42)

	snap := g.Snapshot()
	if snap.Mode != "campaign" {
		t.Errorf("Snapshot Mode = %s, want campaign", snap.Mode)
	}
	if snap.Level != 1 {
		t.Errorf("Snapshot Level = %d, want 1", snap.Level)
	}
	if snap.Target != 128 {
		t.Errorf("Snapshot Target = %d, want 128", snap.Target)
	}
	if snap.Dimension != 4 || len(snap.Board) != 4 {
		t.Errorf("Snapshot Dimension = %d with %d rows, want 4", snap.Dimension, len(snap.Board))
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}

	endless := startGame(t, NewEndless(), 42).Snapshot()
	if endless.Level != 0 || endless.Target != 2048 {
		t.Errorf("endless snapshot = level %d target %d, want 0 and 2048", endless.Level, endless.Target)
	}
}

func TestCampaignLevels(t *testing.T) {
	cfg := config.DefaultT2048Config()
	levels := CampaignLevels(cfg)

	if len(levels) != 10 {
		t.Fatalf("len(levels) = %d, want 10", len(levels))
	}
	if names := LevelNames(levels); names[0] != "Warm-up" {
		t.Errorf("first level = %s, want Warm-up", names[0])
	}
	if targets := LevelTargets(levels); targets[4] != 2048 {
		t.Errorf("level 5 target = %d, want 2048", targets[4])
	}

	cfg.Levels = []config.LevelConfig{{Name: "Plain", Target: 64}}
	if got := CampaignLevels(cfg)[0].Spawn4; got != cfg.Spawn.FourProbability {
		t.Errorf("missing spawn4 = %v, want spawn default %v", got, cfg.Spawn.FourProbability)
	}
}

func TestEventSinkSplitsMerges(t *testing.T) {
	var s eventSink
	s.MoveOneTile(engine.Coord{Row: 0, Col: 3}, engine.Coord{Row: 0, Col: 1}, 8)
	s.MoveTwoTiles([2]engine.Coord{{Row: 2, Col: 1}, {Row: 3, Col: 1}}, engine.Coord{Row: 3, Col: 1}, 16)
	s.InsertTile(engine.Coord{Row: 1, Col: 2}, 2)

	moves, inserted := s.drain()
	want := []TileMove{
		{FromX: 3, FromY: 0, ToX: 1, ToY: 0, Value: 8},
		{FromX: 1, FromY: 2, ToX: 1, ToY: 3, Value: 8, Merged: true},
		{FromX: 1, FromY: 3, ToX: 1, ToY: 3, Value: 8, Merged: true},
	}
	if len(moves) != len(want) {
		t.Fatalf("moves = %+v, want %+v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %+v, want %+v", i, moves[i], want[i])
		}
	}
	if inserted == nil || *inserted != (PendingTile{X: 2, Y: 1, Value: 2}) {
		t.Errorf("inserted = %+v", inserted)
	}

	if m, p := s.drain(); m != nil || p != nil {
		t.Error("drain should reset the buffer")
	}
}

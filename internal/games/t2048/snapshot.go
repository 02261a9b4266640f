package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests and the scoreboard.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     int    // Current level (1-indexed for display), 0 for endless
	Target    int    // Current winning tile value
	Score     int
	Moves     int // Accepted moves
	Dimension int
	Board     [][]int
	MaxTile   int // Highest tile on board
	Reached   bool
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	level := 0
	if g.variant.Mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.variant.Mode),
		Level:     level,
		Target:    g.model.Threshold(),
		Score:     g.model.Score(),
		Moves:     g.moves,
		Dimension: g.board.Dimension(),
		Board:     g.board.Rows(),
		MaxTile:   g.board.MaxTile(),
		Reached:   g.reached,
		State:     state,
	}
}

package core

// RuntimeConfig is handed to a game when it is created.
// Screen size drives layout; Seed makes tile placement reproducible.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Frames per second used for animations
	Seed       int64  // RNG seed, 0 means derive from the clock
	ConfigPath string // Optional path to a custom t2048.yaml
	Difficulty string // Preset name: easy, normal, hard, fixed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0,
		Difficulty: "normal",
	}
}

// GameState is what the platform needs to know after every frame.
type GameState struct {
	Score    int  // Current score
	GameOver bool // No moves left, or the player gave up
	Won      bool // A tile reached the target
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}

// Package config provides YAML-based configuration loading and
// difficulty management for the 2048 puzzle.
package config

import (
	"errors"
	"fmt"
)

// T2048Config contains all configuration for the 2048 puzzle.
type T2048Config struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Levels     []LevelConfig    `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid and the endless-mode win threshold.
type BoardConfig struct {
	Dimension int `yaml:"dimension"` // Side length, clamped to >= 2 by the engine
	Threshold int `yaml:"threshold"` // Tile value that counts as a win, clamped to >= 8
}

// SpawnConfig defines how new tiles appear.
type SpawnConfig struct {
	InitialTiles    int     `yaml:"initial_tiles"`    // Tiles placed on start and reset
	InitialValue    int     `yaml:"initial_value"`    // Value of the starting tiles
	FourProbability float64 `yaml:"four_probability"` // Chance a follow-up tile is a 4
}

// LevelConfig is one campaign level.
type LevelConfig struct {
	Name   string  `yaml:"name"`
	Target int     `yaml:"target"` // Tile value needed to clear the level
	Spawn4 float64 `yaml:"spawn4"` // Four probability override, 0 keeps the spawn default
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score or move count at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	Spawn4Increase float64 `yaml:"spawn4_increase"` // Added to the four probability at max difficulty
}

// Validation errors.
var (
	ErrInvalidTarget      = errors.New("config: level target must be a power of two >= 8")
	ErrInvalidProbability = errors.New("config: probability must be within [0, 1]")
	ErrInvalidSpawn       = errors.New("config: initial tile value must be a power of two >= 2")
)

// Validate checks values the engine would otherwise reject or silently clamp.
func (c T2048Config) Validate() error {
	if !isPowerOfTwo(c.Spawn.InitialValue) {
		return fmt.Errorf("%w: got %d", ErrInvalidSpawn, c.Spawn.InitialValue)
	}
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		return fmt.Errorf("%w: four_probability %v", ErrInvalidProbability, c.Spawn.FourProbability)
	}
	for i, lvl := range c.Levels {
		if lvl.Target < 8 || !isPowerOfTwo(lvl.Target) {
			return fmt.Errorf("%w: level %d (%s) target %d", ErrInvalidTarget, i+1, lvl.Name, lvl.Target)
		}
		if lvl.Spawn4 < 0 || lvl.Spawn4 > 1 {
			return fmt.Errorf("%w: level %d (%s) spawn4 %v", ErrInvalidProbability, i+1, lvl.Name, lvl.Spawn4)
		}
	}
	return nil
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset, defaulting to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

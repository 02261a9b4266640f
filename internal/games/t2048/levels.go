// Package t2048 implements the 2048 puzzle front-end: campaign and endless
// modes, tile animations and rendering on top of the engine model.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
)

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// CampaignLevels builds the level list from configuration.
// A level without its own spawn4 uses the configured spawn default.
func CampaignLevels(cfg config.T2048Config) []Level {
	levels := make([]Level, len(cfg.Levels))
	for i, lc := range cfg.Levels {
		spawn4 := lc.Spawn4
		if spawn4 == 0 {
			spawn4 = cfg.Spawn.FourProbability
		}
		levels[i] = Level{
			ID:     i + 1,
			Name:   lc.Name,
			Target: lc.Target,
			Spawn4: spawn4,
		}
	}
	return levels
}

// LevelNames returns the names of the given levels.
func LevelNames(levels []Level) []string {
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of the given levels.
func LevelTargets(levels []Level) []int {
	targets := make([]int, len(levels))
	for i, lvl := range levels {
		targets[i] = lvl.Target
	}
	return targets
}

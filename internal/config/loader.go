package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the working-directory override checked after the user directory.
const LocalConfigPath = "configs/t2048.yaml"

// LoadT2048 loads the puzzle configuration.
// Search order: customPath -> ~/.tui2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default.
// Only a custom path reports read, parse or validation errors; the other locations are skipped when unusable.
func LoadT2048(customPath string) (T2048Config, error) {
	if customPath != "" {
		cfg, err := readT2048(customPath)
		if err != nil {
			return DefaultT2048Config(), err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("t2048.yaml"); userCfgPath != "" {
		if cfg, err := readT2048(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := readT2048(LocalConfigPath); err == nil {
		return cfg, nil
	}

	cfg, err := parseT2048(defaultT2048YAML)
	if err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func readT2048(path string) (T2048Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return T2048Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parseT2048(data)
	if err != nil {
		return T2048Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseT2048 decodes YAML over the hard-coded defaults, so a partial file
// only overrides the keys it names.
func parseT2048(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	// A file that names levels replaces the whole list.
	cfg.Levels = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, fmt.Errorf("failed to parse: %w", err)
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = DefaultT2048Config().Levels
	}
	if err := cfg.Validate(); err != nil {
		return T2048Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui2048", "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust spawning based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.FourProbability = 0.05
		cfg.Difficulty.Scaling.Spawn4Increase /= 2
	case DifficultyHard:
		cfg.Spawn.FourProbability = 0.20
		cfg.Difficulty.Scaling.Spawn4Increase *= 1.5
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME holding configs, scores and logs.
const AppDir = ".bugs"

// LoadBugs loads the session configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.bugs/configs/bugs.yaml -> ./configs/bugs.yaml -> embedded default
func LoadBugs(customPath string) (BugsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BugsConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseBugs(data)
		if err != nil {
			return BugsConfig{}, fmt.Errorf("%w (in %s)", err, customPath)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("bugs.yaml"), filepath.Join("configs", "bugs.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBugs(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBugs(defaultBugsYAML)
	if err != nil {
		return DefaultBugsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBugs decodes data over the hard-coded defaults and validates the result.
func parseBugs(data []byte) (BugsConfig, error) {
	cfg := DefaultBugsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BugsConfig{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BugsConfig{}, err
	}
	return cfg, nil
}

// UserDir returns ~/.bugs, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyBugsPreset modifies the config based on a difficulty preset.
func ApplyBugsPreset(cfg *BugsConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Hard presets give the autopilot one more tick of lookahead.
	if preset == DifficultyHard && cfg.Bot.Horizon < 4 {
		cfg.Bot.Horizon = 4
	}
}

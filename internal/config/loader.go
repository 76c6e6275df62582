package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "generator.yaml"

// Load loads the tuning document.
// Search order: customPath -> ~/.groomer/configs/generator.yaml ->
// ./configs/generator.yaml -> embedded default -> DefaultConfig.
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGeneratorYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a tuning document over DefaultConfig and validates it. A
// rank or cliff entry that sets a single key keeps the rest of its defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// UnmarshalYAML decodes each rank entry over the tuning already in t.
func (t *RankTable) UnmarshalYAML(node *yaml.Node) error {
	if *t == nil {
		*t = RankTable{}
	}
	return decodeEntries(node, *t)
}

// UnmarshalYAML decodes each cliff entry over the tuning already in t.
func (t *CliffTable) UnmarshalYAML(node *yaml.Node) error {
	if *t == nil {
		*t = CliffTable{}
	}
	return decodeEntries(node, *t)
}

// decodeEntries decodes a mapping entry by entry onto the existing values of
// m. yaml.v3 would otherwise decode every entry into a zero value.
func decodeEntries[T any](node *yaml.Node, m map[level.Difficulty]T) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key level.Difficulty
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		entry := m[key]
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return err
		}
		m[key] = entry
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".groomer", "configs", filename)
}

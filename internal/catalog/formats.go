package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// yamlPack is a level file holding several levels.
type yamlPack struct {
	Levels []level.Descriptor `yaml:"levels"`
}

// ParseYAML parses a level file. The document is either a pack with a
// top-level levels list or a single descriptor. Every level is normalized
// and must validate.
func ParseYAML(data []byte) ([]level.Descriptor, error) {
	var pack yamlPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if len(pack.Levels) == 0 {
		var single level.Descriptor
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
		if single.Name == "" {
			return nil, errors.New("no levels in document")
		}
		pack.Levels = []level.Descriptor{single}
	}

	for i := range pack.Levels {
		d := &pack.Levels[i]
		d.Normalize()
		if err := level.ValidateAll(*d); err != nil {
			return nil, fmt.Errorf("level %d %q: %w", d.ID, d.Name, err)
		}
	}
	return pack.Levels, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

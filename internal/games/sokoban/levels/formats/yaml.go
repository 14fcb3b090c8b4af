// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        int      `yaml:"id"`
	Name      string   `yaml:"name"`
	ParMoves  int      `yaml:"par_moves"`
	ParPushes int      `yaml:"par_pushes"`
	Hint      string   `yaml:"hint,omitempty"`
	Demo      string   `yaml:"demo,omitempty"`
	Map       []string `yaml:"map"`
}

// ParseYAML parses a single YAML level file.
func ParseYAML(data []byte) (core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID <= 0 {
		return core.Level{}, fmt.Errorf("level id must be positive, got %d", yl.ID)
	}

	return core.Level{
		ID:        yl.ID,
		Name:      yl.Name,
		Map:       yl.Map,
		ParMoves:  yl.ParMoves,
		ParPushes: yl.ParPushes,
		Hint:      strings.TrimSpace(yl.Hint),
		Demo:      strings.TrimSpace(yl.Demo),
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

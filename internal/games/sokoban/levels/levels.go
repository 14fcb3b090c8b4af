// Package levels provides the level catalog for Sokoban.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the game, sorted by ID.
// It panics if an embedded file is malformed.
func Builtin() []core.Level {
	var out []core.Level

	err := fs.WalkDir(builtinFS, "builtin", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return err
		}
		lvl, err := formats.ParseYAML(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, lvl)
		return nil
	})
	if err != nil {
		panic("levels: embedded catalog: " + err.Error())
	}

	sortByID(out)
	return out
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string

	// Logger receives a warning for each file LoadAll skips. Optional.
	Logger *log.Logger
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse, or whose map has no single player, are skipped.
// Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]core.Level, error) {
	var out []core.Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping level file", "path", path, "err", err)
			}
			return nil
		}

		out = append(out, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(out)
	return out, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (core.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	lvl, err := parseByExtension(data, ext)
	if err != nil {
		return core.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if _, err := core.NewState(lvl); err != nil {
		return core.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (core.Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return core.Level{}, err
	}
	if lvl, ok := Find(all, id); ok {
		return lvl, nil
	}
	return core.Level{}, fmt.Errorf("level not found: %d", id)
}

// Merge combines two catalogs. Levels in extra replace base levels with the
// same ID. The result is sorted by ID.
func Merge(base, extra []core.Level) []core.Level {
	byID := make(map[int]core.Level, len(base)+len(extra))
	for _, lvl := range base {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range extra {
		byID[lvl.ID] = lvl
	}

	out := make([]core.Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sortByID(out)
	return out
}

// Find returns the level with the given ID.
func Find(all []core.Level, id int) (core.Level, bool) {
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return core.Level{}, false
}

// Index returns the position of the level with the given ID, or -1.
func Index(all []core.Level, id int) int {
	for i, lvl := range all {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

func sortByID(lv []core.Level) {
	sort.Slice(lv, func(i, j int) bool {
		return lv[i].ID < lv[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (core.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return core.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

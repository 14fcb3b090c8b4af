// sokoban is a terminal Sokoban puzzle game.
//
// Usage:
//
//	sokoban list              - List available levels
//	sokoban play [level]      - Play a level directly
//	sokoban menu              - Start the interactive menu (default)
//	sokoban replay <level>    - Play a level's demo in the terminal
//	sokoban serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.sokoban/config.yaml)
//	--levels <dir>   - Directory with extra YAML levels
//	--fps <rate>     - UI tick rate (default from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	// Global flags
	flagConfig string
	flagLevels string
	flagFPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes onto storage spots in your terminal",
	Long: `Sokoban is the classic warehouse puzzle for the terminal.

Available commands:
  list     - Show all levels
  play     - Play a specific level directly
  menu     - Interactive menu with level select and instructions
  replay   - Watch a level's recorded solution
  serve    - Start SSH server for remote play

Examples:
  sokoban
  sokoban play 3
  sokoban replay 1 --interval 100ms
  sokoban serve --ssh :2222
  sokoban list --levels ./my-levels`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI tick rate (0 = from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup holds everything the commands share.
type setup struct {
	cfg    config.SokobanConfig
	levels []core.Level
	logger *log.Logger
}

// loadSetup reads the config and the level catalog. Errors are fatal.
func loadSetup() setup {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
	})

	cfg, err := config.LoadSokoban(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}

	dir := cfg.Levels.Dir
	if flagLevels != "" {
		dir = flagLevels
	}

	all := levels.Builtin()
	if dir != "" {
		loader := levels.NewLoader(dir)
		loader.Logger = logger
		extra, loadErr := loader.LoadAll()
		if loadErr != nil {
			logger.Warn("could not load extra levels", "dir", dir, "error", loadErr)
		} else {
			all = levels.Merge(all, extra)
		}
	}

	return setup{cfg: cfg, levels: all, logger: logger}
}

// settings returns the session options from the config.
func (s setup) settings() tui.Settings {
	return tui.Settings{
		Interval:  s.cfg.Playback.Interval(),
		ShowHints: s.cfg.Display.ShowHints,
	}
}

// localPlayer names the progress owner for local play.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

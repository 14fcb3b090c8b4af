package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var flagHints bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level (default: the first one).

Controls:
  Arrows/WASD  - Move
  R            - Restart (counts a retry)
  N/P          - Next/previous level
  Space        - Auto-solve (levels with a demo)
  H            - Toggle hint
  Esc          - Stop auto-solve / quit
  Q/Ctrl+C     - Quit

Examples:
  sokoban play
  sokoban play 4
  sokoban play 2 --hints
  sokoban play 12 --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagHints, "hints", false, "Show the level hint from the start")
}

func runPlay(_ *cobra.Command, args []string) {
	s := loadSetup()

	startID := 0
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		if _, ok := levels.Find(s.levels, id); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", id)
			fmt.Fprintln(os.Stderr, "Run 'sokoban list' to see available levels.")
			os.Exit(1)
		}
		startID = id
	}

	store, err := storage.Open()
	if err != nil {
		s.logger.Warn("could not open progress store", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := []sokoban.Option{
		sokoban.WithStartLevel(startID),
		sokoban.WithHints(flagHints || s.cfg.Display.ShowHints),
	}
	if store != nil {
		opts = append(opts, sokoban.WithProgress(store.ForPlayer(localPlayer())))
	}
	game := sokoban.New(s.levels, opts...)

	runErr := tui.Run(game, terminalConfig(s.cfg.Runtime.TickRate), s.cfg.Playback.Interval())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig(tickRate int) platformcore.RuntimeConfig {
	cfg := platformcore.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if tickRate > 0 {
		cfg.TickRate = tickRate
	}
	return cfg
}

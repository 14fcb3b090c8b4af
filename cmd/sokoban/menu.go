package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with the main menu",
	Long: `Start Sokoban in interactive menu mode.

The menu offers Play, Select Level, Instructions and Quit. Leaving a level
with Esc returns to the menu; the level list shows your best stars.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --fps 60
  sokoban menu --levels ./my-levels`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s := loadSetup()

	store, err := storage.Open()
	if err != nil {
		s.logger.Warn("could not open progress store", "error", err)
		store = nil
	}

	var progress tui.Progress
	if store != nil {
		progress = store.ForPlayer(localPlayer())
	}

	runErr := tui.RunSession(s.levels, progress, s.settings(), terminalConfig(s.cfg.Runtime.TickRate))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

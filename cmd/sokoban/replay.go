package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/replay"
)

var (
	flagInterval time.Duration
	flagQuiet    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <level>",
	Short: "Play a level's recorded solution",
	Long: `Play back the demo of a level without the interactive UI.

Each demo step prints the board; steps the board rejects are marked as
blocked. Playback stops at the end of the demo, on an invalid move letter,
when the level is solved, or on Ctrl+C.

Examples:
  sokoban replay 1
  sokoban replay 3 --interval 50ms
  sokoban replay 5 --quiet`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Delay between steps (0 = from config)")
	replayCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Print only the final result")
}

var (
	frameHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func runReplay(_ *cobra.Command, args []string) {
	s := loadSetup()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}
	lvl, ok := levels.Find(s.levels, id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", id)
		os.Exit(1)
	}
	if !lvl.HasDemo() {
		fmt.Fprintf(os.Stderr, "Error: level %d has no demo\n", id)
		os.Exit(1)
	}

	state, err := core.NewState(lvl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	interval := flagInterval
	if interval <= 0 {
		interval = s.cfg.Playback.Interval()
	}
	if flagQuiet {
		interval = 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs, valid := replay.Decode(lvl.Demo)
	if !valid {
		s.logger.Warn("demo has an invalid move", "level", lvl.ID, "stops_after", len(dirs))
	}

	total := len([]rune(lvl.Demo))
	step := 0
	var onStep func(core.State)
	if !flagQuiet {
		fmt.Printf("Level %d: %s\nDemo: %s\n\n%s\n", lvl.ID, lvl.Name, replay.Encode(dirs), state.Board)
		prev := state
		onStep = func(st core.State) {
			step++
			header := stepHeader(step, total, prev, st)
			prev = st
			fmt.Println()
			fmt.Println(frameHeader.Render(header))
			fmt.Println(st.Board)
		}
	}

	res := replay.Run(ctx, state, lvl, interval, onStep)
	s.logger.Debug("replay finished", "level", lvl.ID, "steps", res.Steps, "reason", res.Reason)

	fmt.Println()
	if res.State.Complete {
		fmt.Println(resultStyle.Render(fmt.Sprintf("Solved in %d moves, %d pushes %s",
			res.State.Moves, res.State.Pushes, sokoban.StarString(res.State.Stars))))
		return
	}
	fmt.Println(failStyle.Render(fmt.Sprintf("Stopped after %d of %d steps: %s",
		res.Steps, total, res.Reason)))
}

// stepHeader describes one replayed step; steps the board rejected are
// marked as blocked.
func stepHeader(step, total int, prev, st core.State) string {
	header := fmt.Sprintf("step %d/%d  moves %d  pushes %d", step, total, st.Moves, st.Pushes)
	if !st.Accepted(prev) {
		header += "  (blocked)"
	}
	return header
}

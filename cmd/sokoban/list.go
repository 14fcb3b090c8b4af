package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/replay"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the built-in levels plus any levels found in the --levels directory.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	s := loadSetup()

	if len(s.levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println(levelTable(s.levels))
	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a level.")
}

// levelTable renders the catalog as a bordered table.
func levelTable(lvls []core.Level) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Name", "Par moves", "Par pushes", "Demo").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, lvl := range lvls {
		demo := demoSummary(lvl.Demo)
		t.Row(
			strconv.Itoa(lvl.ID),
			lvl.Name,
			strconv.Itoa(lvl.ParMoves),
			strconv.Itoa(lvl.ParPushes),
			demo,
		)
	}

	return t.String()
}

// demoSummary describes a demo string by its step count.
func demoSummary(demo string) string {
	if demo == "" {
		return "no"
	}
	dirs, ok := replay.Decode(demo)
	if !ok {
		return fmt.Sprintf("invalid after %d", len(dirs))
	}
	return fmt.Sprintf("yes (%d)", len(dirs))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and progress",
	Long: `Shows every level with its file, lock state, best time and run history.

Examples:
  escape levels
  escape levels --levels ./mylevels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	e, err := openEnv(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	ids := e.loader.IDs()
	if len(ids) == 0 {
		fmt.Printf("No levels found in %s.\n", levelsLabel())
		return
	}

	var stats map[int]*storage.LevelStats
	if e.store != nil {
		stats, err = e.store.AllLevelStats()
		if err != nil {
			e.logger.Warn("could not read run history", "error", err)
		}
	}

	fmt.Printf("  %-5s  %-14s  %-8s  %-16s  %-5s  %s\n", "Level", "File", "Status", "Record", "Runs", "Average")
	fmt.Printf("  %-5s  %-14s  %-8s  %-16s  %-5s  %s\n", "-----", "----", "------", "------", "----", "-------")

	for _, id := range ids {
		file, _ := e.loader.File(id)
		status := "locked"
		if e.keeper.IsUnlocked(id) {
			status = "unlocked"
		}
		record := "-"
		if rec, ok := e.keeper.Record(id); ok {
			record = fmt.Sprintf("%ss by %s", game.FormatTenths(rec.Tenths), rec.Holder)
		}
		runs, avg := "0", "-"
		if st, ok := stats[id]; ok && st.Completions > 0 {
			runs = fmt.Sprintf("%d", st.Completions)
			avg = fmt.Sprintf("%.1fs", st.AvgTenths/10)
		}
		fmt.Printf("  %-5d  %-14s  %-8s  %-16s  %-5s  %s\n", id, file, status, record, runs, avg)
	}

	fmt.Println()
	fmt.Println("Run 'escape play <level>' to jump into an unlocked level.")
}

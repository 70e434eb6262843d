package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/records"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show best times",
	Long: `Display the best time and holder for every unlocked level.

Examples:
  escape records
  escape records import ./records.txt
  escape records export ./records.txt
  escape records reset`,
	Args: cobra.NoArgs,
	Run:  runRecords,
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <records.txt>",
	Short: "Import records from the legacy text format",
	Long: `Reads one "<seconds> <holder>" line per level and stores every readable
entry. Existing records for those levels are replaced.`,
	Args: cobra.ExactArgs(1),
	Run:  runRecordsImport,
}

var recordsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write records in the legacy text format",
	Args:  cobra.MaximumNArgs(1),
	Run:   runRecordsExport,
}

var recordsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all records, run history and unlocks",
	Args:  cobra.NoArgs,
	Run:   runRecordsReset,
}

func init() {
	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsResetCmd)
}

func runRecords(cmd *cobra.Command, args []string) {
	e, err := openEnv(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	fmt.Println("Records")
	fmt.Println()

	if e.keeper.LevelCount() == 0 {
		fmt.Println("No levels found.")
		return
	}

	fmt.Printf("  %-5s  %-8s  %s\n", "Level", "Time", "Holder")
	fmt.Printf("  %-5s  %-8s  %s\n", "-----", "----", "------")
	shown := 0
	for id := 1; id <= e.keeper.LevelCount(); id++ {
		if !e.keeper.IsUnlocked(id) {
			continue
		}
		shown++
		rec, ok := e.keeper.Record(id)
		if !ok {
			fmt.Printf("  %-5d  %-8s  %s\n", id, "-", "-")
			continue
		}
		fmt.Printf("  %-5d  %-8s  %s\n", id, game.FormatTenths(rec.Tenths)+"s", rec.Holder)
	}

	if locked := e.keeper.LevelCount() - shown; locked > 0 {
		fmt.Println()
		fmt.Printf("%d locked level(s) hidden.\n", locked)
	}
}

func runRecordsImport(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fail("%v", err)
	}
	recs, err := records.ParseLegacy(f)
	f.Close()
	if err != nil {
		fail("reading %s: %v", args[0], err)
	}

	e, err := openEnv(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()
	if e.store == nil {
		e.Close()
		fail("no records database to import into")
	}

	n, err := e.keeper.Import(recs)
	if err != nil {
		e.Close()
		fail("importing records: %v", err)
	}
	fmt.Printf("Imported %d record(s) from %s.\n", n, args[0])
}

func runRecordsExport(cmd *cobra.Command, args []string) {
	e, err := openEnv(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	var w io.Writer = os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			e.Close()
			fail("%v", err)
		}
		defer f.Close()
		w = f
	}

	if err := records.FormatLegacy(w, e.keeper.Records(), e.keeper.LevelCount()); err != nil {
		e.Close()
		fail("writing records: %v", err)
	}
}

func runRecordsReset(cmd *cobra.Command, args []string) {
	e, err := openEnv(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()
	if e.store == nil {
		e.Close()
		fail("no records database to reset")
	}

	if err := e.store.ClearProgress(); err != nil {
		e.Close()
		fail("%v", err)
	}
	fmt.Println("Records, run history and unlocks cleared.")
}

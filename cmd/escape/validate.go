package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/escape/internal/config"
	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/level"
)

var flagWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check level descriptor files",
	Long: `Loads every level and reports descriptor problems: missing fields,
out-of-range indices, unsized objects, reveal cycles, blocked start
positions, unreachable exits and numbering gaps.

With --watch the level directory is re-checked whenever a level or image
file changes. Watching needs --levels.

Examples:
  escape validate
  escape validate --levels ./mylevels --watch`,
	Args: cobra.NoArgs,
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-validate when level files change")
}

func runValidate(cmd *cobra.Command, args []string) {
	if !flagWatch {
		if !validateOnce() {
			os.Exit(1)
		}
		return
	}

	if flagLevelsDir == "" {
		fail("--watch needs a --levels directory")
	}
	dir := expandHome(flagLevelsDir)
	dirs := []string{dir}
	for _, sub := range level.DefaultImageDirs {
		p := filepath.Join(dir, sub)
		if info, err := os.Stat(p); err == nil && info.IsDir() && p != dir {
			dirs = append(dirs, p)
		}
	}

	w, err := level.NewWatcher(dirs...)
	if err != nil {
		fail("watching %s: %v", dir, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	validateOnce()
	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			fmt.Printf("\n%s changed\n", path)
			validateOnce()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}

// validateOnce scans the level set from scratch and prints the result.
func validateOnce() bool {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	loader, err := level.NewLoader(levelsFS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	loader.Character = game.RulesFromConfig(cfg).CharacterSize
	if loader.Count() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no levels found in %s\n", levelsLabel())
		return false
	}

	errs := loader.ValidateAll()
	for _, err := range errs {
		fmt.Printf("  FAIL  %v\n", err)
	}
	if len(errs) > 0 {
		fmt.Printf("%d problem(s) in %d level(s).\n", len(errs), loader.Count())
		return false
	}
	fmt.Printf("All %d levels are valid.\n", loader.Count())
	return true
}

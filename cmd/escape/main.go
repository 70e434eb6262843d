// escape is a point-and-click escape room game for the terminal.
//
// Usage:
//
//	escape play [level]              - Start at the main menu, or jump into a level
//	escape levels                    - List levels, lock state and records
//	escape records                   - Show best times
//	escape records import <file>     - Import a legacy records.txt
//	escape records export [file]     - Write records in the legacy format
//	escape records reset             - Clear records and unlocks
//	escape validate [--watch]        - Check every level descriptor
//	escape config                    - Print the effective configuration
//
// Global flags:
//
//	--db <path>         - Records database (default: ~/.escape/records.db)
//	--levels <dir>      - Level directory (default: built-in levels)
//	--config <path>     - Rules and layout YAML
//	--log-file <path>   - Log destination for interactive play
//	--log-level <lvl>   - debug, info, warn or error
//	--unlock-all        - Unlock every level before starting
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/escape/internal/config"
	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/level"
	"github.com/vovakirdan/escape/internal/records"
	"github.com/vovakirdan/escape/internal/storage"
	"github.com/vovakirdan/escape/levels"
)

var (
	// Global flags
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
	flagLogFile   string
	flagLogLevel  string
	flagUnlockAll bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "escape",
	Short: "Escape - a point-and-click escape room in your terminal",
	Long: `Escape is a room escape puzzle game played with the mouse and keyboard
in a terminal. Explore each room, pick up items and use them to get out.

Available commands:
  play      - Start the game
  levels    - List levels and progress
  records   - View, import, export or reset best times
  validate  - Check level descriptor files
  config    - Print the effective configuration

Examples:
  escape play
  escape play 2
  escape levels
  escape records import ./records.txt
  escape validate --levels ./mylevels --watch`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.escape/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Level directory (empty = built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to rules and layout YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.escape/escape.log", "Log file for interactive play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagUnlockAll, "unlock-all", false, "Unlock every level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
}

// env is everything a command needs to run the game.
type env struct {
	cfg     config.EscapeConfig
	rules   game.Rules
	loader  *level.Loader
	store   *storage.Store
	keeper  *records.Keeper
	logger  *log.Logger
	logFile *os.File
}

// openEnv loads config, levels and records. Interactive commands log to the
// log file because the terminal belongs to the UI.
func openEnv(interactive bool) (*env, error) {
	e := &env{}

	logger, logFile, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}
	e.logger, e.logFile = logger, logFile

	cfg, err := config.Load(flagConfig)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("loading config: %w", err)
	}
	e.cfg = cfg
	e.rules = game.RulesFromConfig(cfg)

	loader, err := level.NewLoader(levelsFS())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	loader.Character = e.rules.CharacterSize
	e.loader = loader

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Play continues in memory without a database.
		e.logger.Warn("could not open records database", "path", flagDBPath, "error", err)
		if !interactive {
			fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		}
	}
	e.store = store

	var backend records.Backend
	if store != nil {
		backend = store
	}
	e.keeper = records.Open(backend, loader.Count(), e.logger)

	if flagUnlockAll {
		if err := e.keeper.UnlockAll(); err != nil {
			e.logger.Warn("could not unlock all levels", "error", err)
		}
	}
	return e, nil
}

// Close releases the database and log file.
func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func newLogger(interactive bool) (*log.Logger, *os.File, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	var f *os.File
	if interactive {
		w = io.Discard
		if flagLogFile != "" {
			path := expandHome(flagLogFile)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating log directory: %w", err)
			}
			f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("opening log file: %w", err)
			}
			w = f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "escape",
		Level:           lvl,
	})
	return logger, f, nil
}

// levelsFS returns the level directory, or the built-in levels.
func levelsFS() fs.FS {
	if flagLevelsDir == "" {
		return levels.FS
	}
	return os.DirFS(expandHome(flagLevelsDir))
}

// runtimeConfig derives the shell's cell scale from the loaded config.
func runtimeConfig(cfg config.EscapeConfig) core.RuntimeConfig {
	rc := core.RuntimeConfig{
		CellW:        cfg.Terminal.CellWidth,
		CellH:        cfg.Terminal.CellHeight,
		TickInterval: game.TickInterval,
	}
	rc.ScreenW = (cfg.Layout.Width + rc.CellW - 1) / rc.CellW
	rc.ScreenH = (cfg.Layout.Height + rc.CellH - 1) / rc.CellH
	return rc
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/platform/tui"
)

var (
	flagTheme       string
	flagScreenshots string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start the game at the main menu, or jump straight into an unlocked level.

Controls:
  Arrows/WASD  - Move
  Mouse        - Hover to describe, click to interact
  Space        - Pick up what you stand on
  P            - Pause
  ?            - Help
  Esc          - Leave the level / back
  Q/Ctrl+C     - Quit

Examples:
  escape play
  escape play 3 --unlock-all
  escape play --levels ./mylevels --theme monochrome`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, monochrome")
	playCmd.Flags().StringVar(&flagScreenshots, "screenshots", "~/.escape/screenshots", "Directory for ctrl+s screenshots")
}

func runPlay(cmd *cobra.Command, args []string) {
	start := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fail("invalid level %q", args[0])
		}
		start = n
	}

	theme, ok := findTheme(flagTheme)
	if !ok {
		fail("unknown theme %q", flagTheme)
	}

	e, err := openEnv(true)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	if e.loader.Count() == 0 {
		e.Close()
		fail("no levels found in %s", levelsLabel())
	}

	engine := game.NewEngine(e.loader, e.keeper, e.rules, e.logger)
	if start > 0 {
		if err := engine.StartLevel(start); err != nil {
			e.Close()
			fail("%v", err)
		}
	}

	rc := runtimeConfig(e.cfg)
	scene := tui.Scene{Rules: e.rules, Config: rc, Theme: theme}
	needW, needH := scene.Size()
	needH += 2 // status and help lines
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW, rc.ScreenH = w, h
		if w < needW || h < needH {
			fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the room needs %dx%d\n", w, h, needW, needH)
		}
	}

	shots := ""
	if flagScreenshots != "" {
		shots = filepath.Clean(expandHome(flagScreenshots))
	}

	runErr := tui.Run(engine, tui.Options{
		Rules:         e.rules,
		Config:        rc,
		Theme:         theme,
		Logger:        e.logger,
		ScreenshotDir: shots,
	})
	if runErr != nil {
		e.Close()
		fail("running game: %v", runErr)
	}
}

func findTheme(name string) (tui.Theme, bool) {
	for _, t := range tui.Themes() {
		if t.Name == name {
			return t, true
		}
	}
	return tui.Theme{}, false
}

func levelsLabel() string {
	if flagLevelsDir == "" {
		return "the built-in level set"
	}
	return flagLevelsDir
}

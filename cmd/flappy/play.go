package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var flagShotDir string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Space/Up/W/K/Click  - Flap (starts a run from the menu)
  Enter               - Start / resume
  P/Esc               - Pause
  R                   - Restart (after game over)
  B                   - Back to menu (after game over)
  M                   - Mute
  U                   - Retry audio device
  C                   - Copy score summary (after game over)
  Ctrl+S              - Save a text screenshot
  ?                   - Toggle help
  Q/Ctrl+C            - Quit

Difficulty options:
  easy   - Wider gaps, stages change later
  normal - Stock tuning
  hard   - Starts at the mid stage
  fixed  - No progression, stays at the initial stage

Examples:
  flappy play
  flappy play --difficulty easy
  flappy play --gravity 0.3 --flap -7
  flappy play --config ./my-flappy.yaml --no-audio`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagShotDir, "shots", ".", "Directory for Ctrl+S screenshots")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	sess, err := newSession(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	runErr := tui.Run(sess.machine, cfg,
		tui.WithImages(sess.images),
		tui.WithLogger(logger),
		tui.WithScreenshotDir(flagShotDir),
	)

	// Close before a potential exit so the last score is flushed
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

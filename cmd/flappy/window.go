package main

import (
	"fmt"
	"os"

	_ "github.com/ebitengine/hideconsole" // no console window on Windows
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/desktop"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window. Takes the same flags as play.

Controls are the same as in the terminal; touch screens flap with any
finger and C copies the score summary after a run.

Examples:
  flappy window
  flappy window --scale 1.5
  flappy window --difficulty hard --log-file flappy.log`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size as a multiple of the canvas")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
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

	game := desktop.NewGame(sess.machine,
		desktop.WithImages(sess.images),
		desktop.WithLogger(logger),
	)
	runErr := desktop.Run(game, "Flappy", flagScale)
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// flappy is a side-scrolling flap-to-avoid-pipes game for the terminal,
// a desktop window, or remote players over SSH.
//
// Usage:
//
//	flappy play      - Play in the terminal
//	flappy window    - Play in a desktop window
//	flappy serve     - Start SSH server for remote play
//	flappy scores    - Show high scores
//	flappy config    - Print the effective configuration
//	flappy assets    - List asset slots and whether they loaded
//
// Global flags:
//
//	--config <path>       - Custom YAML config
//	--difficulty <name>   - easy, normal, hard, fixed
//	--db <path>           - Scores database (default: ~/.arcade/flappy.db)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagGravity    float64
	flagFlap       float64
	flagSpeed      float64
	flagGap        float64
	flagMute       bool
	flagNoAudio    bool
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap between the pipes",
	Long: `Flappy is a side-scrolling obstacle game. Flap to stay airborne and
slip through the gaps between pipes; every pipe passed scores a point.
The game speeds up as the score and run time grow.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration
  assets   - List asset slots

Examples:
  flappy play
  flappy play --difficulty hard
  flappy window --gravity 0.3 --gap 160
  flappy serve --ssh :2222
  flappy scores --difficulty easy`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.Float64Var(&flagGravity, "gravity", 0, "Base gravity per reference frame (0 = config)")
	pf.Float64Var(&flagFlap, "flap", 0, "Base flap impulse, negative is up (0 = config)")
	pf.Float64Var(&flagSpeed, "speed", 0, "Base horizontal speed (0 = config)")
	pf.Float64Var(&flagGap, "gap", 0, "Base gap height (0 = config)")
	pf.BoolVar(&flagMute, "mute", false, "Start muted")
	pf.BoolVar(&flagNoAudio, "no-audio", false, "Never open the audio device")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(assetsCmd)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the config
file, the difficulty preset and the physics flags are merged and
out-of-range values are repaired. The output is valid YAML and can be
saved as a starting point for --config.

Examples:
  flappy config > ~/.arcade/configs/flappy.yaml
  flappy config --difficulty hard --gap 120`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List asset slots and whether they loaded",
	Long: `Resolve every image, music and effect slot in the configuration and
report which ones loaded. Empty slots use the built-in shapes or stay
silent; failed slots show the decode error.`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func runConfig(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func runAssets(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Decoding needs no output device.
	var loader assets.AudioLoader
	if cfg.Audio.Enabled {
		loader = audio.NewBeepBackend(cfg.Audio.Volume, logger)
	}
	printAssets(os.Stdout, assets.Load(cfg.Assets, loader, logger).List())
}

func printAssets(w io.Writer, list []assets.Status) {
	maxName := 4 // "Slot" header
	for _, st := range list {
		maxName = max(maxName, len(st.Name))
	}

	fmt.Fprintf(w, "  %-*s  %-6s  %-6s  %s\n", maxName, "Slot", "Kind", "State", "Path")
	fmt.Fprintf(w, "  %-*s  %-6s  %-6s  %s\n", maxName, "----", "----", "-----", "----")
	for _, st := range list {
		state := "empty"
		switch {
		case st.Loaded:
			state = "ok"
		case errors.Is(st.Err, assets.ErrNoAudio):
			state = "off"
		case st.Err != nil:
			state = "failed"
		}
		fmt.Fprintf(w, "  %-*s  %-6s  %-6s  %s\n", maxName, st.Name, st.Kind, state, st.Path)
		if state == "failed" {
			fmt.Fprintf(w, "  %-*s  %s\n", maxName, "", st.Err)
		}
	}
}

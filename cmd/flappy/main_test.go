package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// withFlags resets the global flags after a test changes them.
func withFlags(t *testing.T) {
	t.Helper()
	saved := struct {
		config, difficulty        string
		gravity, flap, speed, gap float64
		mute, noAudio             bool
	}{flagConfig, flagDifficulty, flagGravity, flagFlap, flagSpeed, flagGap, flagMute, flagNoAudio}
	t.Cleanup(func() {
		flagConfig, flagDifficulty = saved.config, saved.difficulty
		flagGravity, flagFlap, flagSpeed, flagGap = saved.gravity, saved.flap, saved.speed, saved.gap
		flagMute, flagNoAudio = saved.mute, saved.noAudio
	})
}

func TestBoard(t *testing.T) {
	tests := []struct {
		difficulty string
		gap        float64
		want       string
		wantErr    bool
	}{
		{"", 0, "flappy/normal", false},
		{"hard", 0, "flappy/hard", false},
		{"easy", 150, "flappy/easy+custom", false},
		{"insane", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			withFlags(t)
			flagDifficulty, flagGap = tt.difficulty, tt.gap

			got, err := board()
			if (err != nil) != tt.wantErr {
				t.Fatalf("board() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("board() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfigMergesFlags(t *testing.T) {
	withFlags(t)
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	doc := "audio:\n  enabled: true\n  volume: 0.5\ndifficulty:\n  stages:\n    initial:\n      gravity: 0.4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	flagConfig = path
	flagGravity = 0.2
	flagMute = true
	flagNoAudio = true

	cfg, err := loadConfig(log.New(io.Discard))
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if got := cfg.Difficulty.Stages.Initial.Gravity; got != 0.2 {
		t.Errorf("initial gravity = %v, want the flag value 0.2", got)
	}
	if cfg.Audio.Enabled || !cfg.Audio.Muted {
		t.Errorf("audio = %+v, want disabled and muted", cfg.Audio)
	}
	if cfg.Audio.Volume != 0.5 {
		t.Errorf("volume = %v, want the file value 0.5", cfg.Audio.Volume)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	withFlags(t)
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := loadConfig(log.New(io.Discard)); err == nil {
		t.Error("missing --config file should fail")
	}

	flagConfig = ""
	flagDifficulty = "insane"
	if _, err := loadConfig(log.New(io.Discard)); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printScores(&buf, store, "flappy/normal"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("empty board output:\n%s", buf.String())
	}

	for _, s := range []int{4, 9, 2} {
		if _, err := store.SaveScore("flappy/normal", s); err != nil {
			t.Fatal(err)
		}
	}
	buf.Reset()
	if err := printScores(&buf, store, "flappy/normal"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Best: 9   Runs: 3   Average: 5.0") {
		t.Errorf("stats line missing:\n%s", out)
	}
	if !strings.Contains(out, "  1     9") {
		t.Errorf("rank 1 should hold 9:\n%s", out)
	}
}

func TestPrintAssets(t *testing.T) {
	list := []assets.Status{
		{Name: "background", Kind: assets.KindImage},
		{Name: "menu", Kind: assets.KindTrack, Path: "menu.wav", Err: assets.ErrNoAudio},
		{Name: "pipe", Kind: assets.KindImage, Path: "pipe.png", Err: errors.New("assets: decode pipe.png: bad")},
		{Name: "player", Kind: assets.KindImage, Path: "bird.png", Loaded: true},
	}
	var buf bytes.Buffer
	printAssets(&buf, list)
	out := buf.String()

	for _, want := range []string{
		"background  image   empty",
		"menu        track   off     menu.wav",
		"pipe        image   failed  pipe.png",
		"assets: decode pipe.png: bad",
		"player      image   ok      bird.png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

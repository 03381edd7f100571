package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("flappy/normal", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if best, _ := store.HighScore("flappy/normal"); best != 12 {
		t.Errorf("HighScore() after reopen = %d, want 12", best)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200, 100} {
		if _, err := store.SaveScore("flappy/normal", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("flappy/hard", 500)

	tests := []struct {
		name  string
		board string
		limit int
		want  []int
	}{
		{"all", "flappy/normal", 10, []int{200, 100, 100, 50}},
		{"limited", "flappy/normal", 2, []int{200, 100}},
		{"default limit", "flappy/normal", 0, []int{200, 100, 100, 50}},
		{"other board", "flappy/hard", 10, []int{500}},
		{"empty board", "flappy/easy", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.TopScores(tt.board, tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Score != tt.want[i] || e.Board != tt.board {
					t.Errorf("entry %d = %+v, want score %d", i, e, tt.want[i])
				}
			}
		})
	}

	// Equal scores keep insertion order
	top, _ := store.TopScores("flappy/normal", 10)
	if top[1].ID > top[2].ID {
		t.Errorf("tie order: id %d before %d", top[1].ID, top[2].ID)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy/normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty board high = %d, want 0", high)
	}

	store.SaveScore("flappy/normal", 3)
	store.SaveScore("flappy/normal", 9)
	store.SaveScore("flappy/normal", 4)
	if high, _ = store.HighScore("flappy/normal"); high != 9 {
		t.Errorf("high = %d, want 9", high)
	}
}

func TestStoreStatsAndBoards(t *testing.T) {
	store := openTestStore(t)

	st, err := store.Stats("flappy/normal")
	if err != nil {
		t.Fatalf("Stats() on empty board failed: %v", err)
	}
	if st.Runs != 0 || st.Best != 0 || !st.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", st)
	}

	store.SaveScore("flappy/normal", 2)
	store.SaveScore("flappy/normal", 6)
	store.SaveScore("flappy/easy", 1)

	st, err = store.Stats("flappy/normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Best != 6 || st.Average != 4 {
		t.Errorf("stats = %+v", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	boards, err := store.Boards()
	if err != nil {
		t.Fatalf("Boards() failed: %v", err)
	}
	if len(boards) != 2 || boards[0] != "flappy/easy" || boards[1] != "flappy/normal" {
		t.Errorf("Boards() = %v", boards)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy/normal", 100)
	store.SaveScore("flappy/normal", 200)
	store.SaveScore("flappy/hard", 300)

	n, err := store.ClearScores("flappy/normal")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared %d rows, want 2", n)
	}
	if left, _ := store.TopScores("flappy/normal", 10); len(left) != 0 {
		t.Errorf("%d scores left after clear", len(left))
	}
	if hard, _ := store.TopScores("flappy/hard", 10); len(hard) != 1 {
		t.Error("other boards should not be affected")
	}
}

func TestBoardFor(t *testing.T) {
	tests := []struct {
		preset     config.DifficultyPreset
		overridden bool
		want       string
	}{
		{"", false, "flappy/normal"},
		{config.DifficultyNormal, false, "flappy/normal"},
		{config.DifficultyHard, false, "flappy/hard"},
		{config.DifficultyFixed, true, "flappy/fixed+custom"},
	}
	for _, tt := range tests {
		if got := BoardFor(tt.preset, tt.overridden); got != tt.want {
			t.Errorf("BoardFor(%q, %v) = %q, want %q", tt.preset, tt.overridden, got, tt.want)
		}
	}
}

func TestKeeper(t *testing.T) {
	store := openTestStore(t)
	k := NewKeeper(store, "flappy/hard")

	if best, err := k.BestScore(); err != nil || best != 0 {
		t.Fatalf("BestScore() = %d, %v", best, err)
	}
	if err := k.RecordScore(7); err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}
	k.RecordScore(5)
	if best, _ := k.BestScore(); best != 7 {
		t.Errorf("BestScore() = %d, want 7", best)
	}
	if other, _ := store.HighScore("flappy/normal"); other != 0 {
		t.Error("keeper wrote outside its board")
	}
}

func TestMemoryKeeper(t *testing.T) {
	k := NewMemoryKeeper()
	if best, _ := k.BestScore(); best != 0 {
		t.Fatalf("empty best = %d", best)
	}

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			k.RecordScore(score)
		}(i)
	}
	wg.Wait()

	if k.Runs() != 20 {
		t.Errorf("Runs() = %d, want 20", k.Runs())
	}
	if best, _ := k.BestScore(); best != 20 {
		t.Errorf("BestScore() = %d, want 20", best)
	}
}

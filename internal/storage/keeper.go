package storage

import (
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// BoardFor names the leaderboard a difficulty preset plays on. Runs with
// custom physics overrides go to their own board so they never compete
// with stock runs.
func BoardFor(preset config.DifficultyPreset, overridden bool) string {
	if preset == "" {
		preset = config.DifficultyNormal
	}
	board := "flappy/" + string(preset)
	if overridden {
		board += "+custom"
	}
	return board
}

// Keeper binds a Store to one board. It satisfies engine.ScoreKeeper.
type Keeper struct {
	store *Store
	board string
}

// NewKeeper returns a keeper that reads and writes board.
func NewKeeper(store *Store, board string) *Keeper {
	return &Keeper{store: store, board: board}
}

// Board returns the board this keeper writes to.
func (k *Keeper) Board() string {
	return k.board
}

// BestScore returns the best recorded score on the board.
func (k *Keeper) BestScore() (int, error) {
	return k.store.HighScore(k.board)
}

// RecordScore stores a finished run.
func (k *Keeper) RecordScore(score int) error {
	_, err := k.store.SaveScore(k.board, score)
	return err
}

// MemoryKeeper keeps scores for the lifetime of the process. It is used
// when no database can be opened. Safe for concurrent use, since SSH
// sessions share one keeper.
type MemoryKeeper struct {
	mu     sync.Mutex
	scores []int
}

// NewMemoryKeeper returns an empty in-memory keeper.
func NewMemoryKeeper() *MemoryKeeper {
	return &MemoryKeeper{}
}

// BestScore returns the highest recorded score, or 0.
func (m *MemoryKeeper) BestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := 0
	for _, s := range m.scores {
		best = max(best, s)
	}
	return best, nil
}

// RecordScore appends a run.
func (m *MemoryKeeper) RecordScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, score)
	return nil
}

// Runs returns how many runs were recorded.
func (m *MemoryKeeper) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scores)
}

// Package assets resolves configured image and audio paths into handles.
// A slot that is unset or fails to load resolves to nil, which every
// consumer treats as "no asset" and replaces with a fallback.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Slot names.
const (
	SlotBackground    = "background"
	SlotPlayer        = "player"
	SlotPipe          = "pipe"
	SlotMenuMusic     = "menu"
	SlotGameMusic     = "game"
	SlotGameOverMusic = "gameover"
)

// EffectSlot returns the slot name for a one-shot effect.
func EffectSlot(effect string) string {
	return "sfx." + effect
}

// Kind is the type of resource a slot holds.
type Kind int

const (
	KindImage Kind = iota
	KindTrack
	KindEffect
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindTrack:
		return "track"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// ErrNoAudio marks audio slots skipped because no audio loader was given.
var ErrNoAudio = errors.New("assets: audio disabled")

// Status describes one slot after loading.
type Status struct {
	Name   string
	Kind   Kind
	Path   string
	Loaded bool
	Err    error
}

// AudioLoader decodes audio files. audio.BeepBackend satisfies it.
type AudioLoader interface {
	LoadTrack(path string) (audio.Track, error)
	LoadEffect(path string) (audio.Effect, error)
}

// Registry holds resolved handles by slot name.
type Registry struct {
	mu      sync.RWMutex
	images  map[string]image.Image
	tracks  map[string]audio.Track
	effects map[string]audio.Effect
	status  map[string]Status
	logger  *log.Logger
}

// New creates an empty registry.
func New(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		images:  make(map[string]image.Image),
		tracks:  make(map[string]audio.Track),
		effects: make(map[string]audio.Effect),
		status:  make(map[string]Status),
		logger:  logger,
	}
}

// Load resolves every slot in cfg. audioLoader may be nil, in which case
// audio slots stay empty.
func Load(cfg config.AssetConfig, audioLoader AudioLoader, logger *log.Logger) *Registry {
	r := New(logger)

	r.LoadImage(SlotBackground, cfg.Background)
	r.LoadImage(SlotPlayer, cfg.Player)
	r.LoadImage(SlotPipe, cfg.Pipe)

	r.LoadTrack(SlotMenuMusic, cfg.MenuMusic, audioLoader)
	r.LoadTrack(SlotGameMusic, cfg.GameMusic, audioLoader)
	r.LoadTrack(SlotGameOverMusic, cfg.GameOverMusic, audioLoader)

	for _, name := range audio.EffectNames {
		r.LoadEffect(name, cfg.Effects[name], audioLoader)
	}
	return r
}

// LoadImage decodes an image file into slot name. An empty path leaves the
// slot empty; a failure is logged and also leaves it empty.
func (r *Registry) LoadImage(name, path string) {
	st := Status{Name: name, Kind: KindImage, Path: path}
	if path != "" {
		img, err := decodeImage(path)
		if err != nil {
			st.Err = err
			r.logger.Warn("image unavailable, using fallback", "slot", name, "err", err)
		} else {
			st.Loaded = true
			r.mu.Lock()
			r.images[name] = img
			r.mu.Unlock()
		}
	}
	r.setStatus(st)
}

// LoadTrack decodes a background track into slot name.
func (r *Registry) LoadTrack(name, path string, l AudioLoader) {
	st := Status{Name: name, Kind: KindTrack, Path: path}
	switch {
	case path == "":
	case l == nil:
		st.Err = ErrNoAudio
	default:
		t, err := l.LoadTrack(path)
		if err != nil {
			st.Err = err
			r.logger.Warn("track unavailable, using silence", "slot", name, "err", err)
			break
		}
		st.Loaded = true
		r.mu.Lock()
		r.tracks[name] = t
		r.mu.Unlock()
	}
	r.setStatus(st)
}

// LoadEffect decodes a one-shot effect. The slot is EffectSlot(effect).
func (r *Registry) LoadEffect(effect, path string, l AudioLoader) {
	name := EffectSlot(effect)
	st := Status{Name: name, Kind: KindEffect, Path: path}
	switch {
	case path == "":
	case l == nil:
		st.Err = ErrNoAudio
	default:
		e, err := l.LoadEffect(path)
		if err != nil {
			st.Err = err
			r.logger.Warn("effect unavailable, using silence", "slot", name, "err", err)
			break
		}
		st.Loaded = true
		r.mu.Lock()
		r.effects[effect] = e
		r.mu.Unlock()
	}
	r.setStatus(st)
}

// SetImage stores an already decoded image. A nil image clears the slot.
func (r *Registry) SetImage(name string, img image.Image) {
	r.mu.Lock()
	if img == nil {
		delete(r.images, name)
	} else {
		r.images[name] = img
	}
	r.mu.Unlock()
	r.setStatus(Status{Name: name, Kind: KindImage, Loaded: img != nil})
}

// Image returns the image in a slot, or nil.
func (r *Registry) Image(name string) image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.images[name]
}

// Tracks returns the background tracks for the audio coordinator.
func (r *Registry) Tracks() audio.Tracks {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return audio.Tracks{
		Menu:     r.tracks[SlotMenuMusic],
		InGame:   r.tracks[SlotGameMusic],
		GameOver: r.tracks[SlotGameOverMusic],
	}
}

// Effects returns the loaded effects keyed by effect name.
func (r *Registry) Effects() map[string]audio.Effect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]audio.Effect, len(r.effects))
	for k, v := range r.effects {
		out[k] = v
	}
	return out
}

// List returns the status of every slot, sorted by name.
func (r *Registry) List() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Status, 0, len(r.status))
	for _, st := range r.status {
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (r *Registry) setStatus(st Status) {
	r.mu.Lock()
	r.status[st.Name] = st
	r.mu.Unlock()
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

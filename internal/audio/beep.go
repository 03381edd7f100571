package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// ErrNotReady is returned by playback when the speaker never initialized.
var ErrNotReady = errors.New("audio: output device not ready")

// BeepBackend decodes audio files into memory buffers and plays them through
// a single speaker mixer.
type BeepBackend struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
	logger *log.Logger
}

// NewBeepBackend creates a backend. Init must be called before playback.
func NewBeepBackend(volume float64, logger *log.Logger) *BeepBackend {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BeepBackend{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the output device and starts the mixer. Calling it again after
// success is a no-op, so it doubles as the unlock retry.
func (b *BeepBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(b.mixer)
	b.ready = true
	b.logger.Debug("speaker ready", "rate", int(sampleRate), "volume", b.volume)
	return nil
}

// Ready reports whether the output device is open.
func (b *BeepBackend) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Close silences and detaches every stream.
func (b *BeepBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	b.ready = false
}

// LoadTrack decodes a WAV or MP3 file into a looping background track.
func (b *BeepBackend) LoadTrack(path string) (Track, error) {
	buf, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return &BeepTrack{backend: b, buf: buf}, nil
}

// LoadEffect decodes a WAV or MP3 file into a one-shot effect.
func (b *BeepBackend) LoadEffect(path string) (Effect, error) {
	buf, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return &BeepEffect{backend: b, buf: buf}, nil
}

func (b *BeepBackend) withVolume(s beep.Streamer) beep.Streamer {
	if b.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(b.volume)}
}

// decodeFile reads the whole file into a buffer at the output sample rate,
// so tracks can be rewound and effects replayed without touching disk.
func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("audio: unsupported format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	out := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	var src beep.Streamer = stream
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}
	buf.Append(src)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: %s is empty", path)
	}
	return buf, nil
}

// BeepTrack is a looping track attached to the mixer on first Play.
type BeepTrack struct {
	backend *BeepBackend
	buf     *beep.Buffer
	seeker  beep.StreamSeeker
	ctrl    *beep.Ctrl
}

// Play starts or continues the track.
func (t *BeepTrack) Play() error {
	if !t.backend.Ready() {
		return ErrNotReady
	}
	if t.ctrl == nil {
		t.seeker = t.buf.Streamer(0, t.buf.Len())
		t.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, t.seeker), Paused: false}
		speaker.Lock()
		t.backend.mixer.Add(t.backend.withVolume(t.ctrl))
		speaker.Unlock()
		return nil
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause stops the track at its current position.
func (t *BeepTrack) Pause() error {
	if t.ctrl == nil {
		return nil
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// Rewind moves the track back to its first sample.
func (t *BeepTrack) Rewind() error {
	if t.seeker == nil {
		return nil
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.seeker.Seek(0)
}

// BeepEffect is a one-shot sound; each Play mixes a fresh stream.
type BeepEffect struct {
	backend *BeepBackend
	buf     *beep.Buffer
}

// Play mixes the effect from its start.
func (e *BeepEffect) Play() error {
	if !e.backend.Ready() {
		return ErrNotReady
	}
	s := e.buf.Streamer(0, e.buf.Len())
	speaker.Lock()
	e.backend.mixer.Add(e.backend.withVolume(s))
	speaker.Unlock()
	return nil
}

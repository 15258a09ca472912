package queue

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
	"github.com/Hcaziah/AudioClassifier/internal/player"
)

// ErrAtBounds is returned when Advance or Retreat would move the cursor
// outside [1, N]. The cursor state is unchanged and nothing plays.
var ErrAtBounds = errors.New("cursor at bounds")

// Cursor is a 1-based navigable index over an ordered clip list. It
// exclusively owns the active playback handle: starting playback always
// stops the previous handle first. All operations take the cursor mutex,
// so concurrent navigation calls queue rather than interleave.
type Cursor struct {
	files  []*audio.File
	player player.Player

	mu      sync.Mutex
	current int
	handle  player.Handle

	log *slog.Logger
}

// New builds a cursor positioned at index 1. The file list is fixed for
// the cursor's lifetime; re-scanning a folder means building a new
// cursor.
func New(files []*audio.File, p player.Player, log *slog.Logger) (*Cursor, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("cannot build cursor over empty clip list")
	}

	if p == nil {
		return nil, fmt.Errorf("player must not be nil")
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Cursor{
		files:   files,
		player:  p,
		current: 1,
		log:     log,
	}, nil
}

// Current returns the 1-based cursor position.
func (c *Cursor) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Len returns the number of clips.
func (c *Cursor) Len() int {
	return len(c.files)
}

// CurrentFile returns the clip file at the cursor position.
func (c *Cursor) CurrentFile() *audio.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files[c.current-1]
}

// FileNames returns the ordered clip names the cursor navigates.
func (c *Cursor) FileNames() []string {
	names := make([]string, len(c.files))
	for i, f := range c.files {
		names[i] = f.Name()
	}
	return names
}

// CanAdvance reports whether the cursor is below the last clip.
func (c *Cursor) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current < len(c.files)
}

// CanRetreat reports whether the cursor is above the first clip.
func (c *Cursor) CanRetreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current > 1
}

// PlayCurrent starts playback of the clip at the cursor position,
// stopping any playback already in flight.
func (c *Cursor) PlayCurrent() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked()
}

// Advance stops playback, moves the cursor forward one clip, and plays
// it. At the last clip the cursor is left unchanged and ErrAtBounds is
// returned.
func (c *Cursor) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current >= len(c.files) {
		return ErrAtBounds
	}

	c.stopLocked()
	c.current++
	return c.playLocked()
}

// Retreat stops playback, moves the cursor back one clip, and plays it.
// At the first clip the cursor is left unchanged and ErrAtBounds is
// returned.
func (c *Cursor) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current <= 1 {
		return ErrAtBounds
	}

	c.stopLocked()
	c.current--
	return c.playLocked()
}

// StopCurrent terminates the active playback, if any.
func (c *Cursor) StopCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Cursor) playLocked() error {
	c.stopLocked()

	file := c.files[c.current-1]
	clip, err := file.Load()
	if err != nil {
		return err
	}

	handle, err := c.player.Play(clip)
	if err != nil {
		return fmt.Errorf("failed to play %s: %w", file.Name(), err)
	}

	c.handle = handle
	c.log.Debug("playback started",
		slog.Int("index", c.current),
		slog.String("file", file.Name()),
	)

	return nil
}

func (c *Cursor) stopLocked() {
	if c.handle == nil {
		return
	}

	_ = c.handle.Stop()
	c.handle = nil
}

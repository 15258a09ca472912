package player

import (
	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

// Noop is a Player that discards playback. It keeps the review flow
// usable on machines without an audio device.
type Noop struct{}

func (Noop) Play(_ *audio.Clip) (Handle, error) {
	h := noopHandle{done: make(chan struct{})}
	close(h.done)
	return h, nil
}

func (Noop) Close() error { return nil }

// noopHandle is born finished.
type noopHandle struct {
	done chan struct{}
}

func (h noopHandle) Stop() error { return nil }

func (h noopHandle) Done() <-chan struct{} { return h.done }

//go:build cgo

package player

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

// framesPerBuffer is the device write granularity. Stop latency is one
// buffer at worst (~23ms at 44.1kHz).
const framesPerBuffer = 1024

// PortAudio implements Player using the default output device.
type PortAudio struct {
	mu     sync.Mutex
	closed bool
}

// NewPortAudio initializes the PortAudio runtime and returns a player
// bound to the default output device.
func NewPortAudio() (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	return &PortAudio{}, nil
}

// Play opens an output stream matching the clip's format and feeds it
// from a background goroutine until the clip ends or the handle is
// stopped.
func (p *PortAudio) Play(clip *audio.Clip) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("player is closed")
	}

	buf := make([]int16, framesPerBuffer*clip.Channels())

	stream, err := portaudio.OpenDefaultStream(
		0, clip.Channels(), float64(clip.SampleRate()), framesPerBuffer, buf,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to start output stream: %w", err)
	}

	h := &paHandle{
		stream: stream,
		buf:    buf,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go h.run(clip.Samples())

	return h, nil
}

// Close terminates the PortAudio runtime.
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}

	return nil
}

// paHandle owns one live output stream.
type paHandle struct {
	stream   *portaudio.Stream
	buf      []int16
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// run feeds samples to the device buffer by buffer until exhaustion or
// stop, then tears the stream down and signals done.
func (h *paHandle) run(samples []int16) {
	defer close(h.done)
	defer func() {
		_ = h.stream.Stop()
		_ = h.stream.Close()
	}()

	for offset := 0; offset < len(samples); offset += len(h.buf) {
		select {
		case <-h.stop:
			return
		default:
		}

		n := copy(h.buf, samples[offset:])
		for i := n; i < len(h.buf); i++ {
			h.buf[i] = 0
		}

		if err := h.stream.Write(); err != nil {
			return
		}
	}
}

// Stop terminates playback and waits for the stream goroutine to
// release the device.
func (h *paHandle) Stop() error {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
	return nil
}

// Done reports playback completion.
func (h *paHandle) Done() <-chan struct{} {
	return h.done
}

package audio

import (
	"errors"
	"fmt"
	"time"
)

// ErrDecode indicates malformed or unsupported audio input.
var ErrDecode = errors.New("audio decode failed")

// BytesPerSample is fixed for PCM-16 audio.
const BytesPerSample = 2

// Clip is a decoded PCM-16 recording. Samples are interleaved across
// channels. A Clip is immutable once constructed; components hand clips
// over rather than sharing them mutably.
type Clip struct {
	samples    []int16
	sampleRate int
	channels   int
}

// NewClip constructs a clip from interleaved PCM-16 samples.
func NewClip(samples []int16, sampleRate, channels int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("channel count must be at least 1, got %d", channels)
	}

	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of channel count %d", len(samples), channels)
	}

	return &Clip{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Silence synthesizes a clip of digital silence with the given duration
// and format.
func Silence(d time.Duration, sampleRate, channels int) *Clip {
	frames := int(d.Seconds() * float64(sampleRate))
	return &Clip{
		samples:    make([]int16, frames*channels),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Concat joins clips in order. All clips must share sample rate and
// channel count.
func Concat(clips ...*Clip) (*Clip, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("cannot concatenate zero clips")
	}

	total := 0
	for i, c := range clips {
		if c.sampleRate != clips[0].sampleRate || c.channels != clips[0].channels {
			return nil, fmt.Errorf("clip %d format mismatch: %d Hz/%d ch vs %d Hz/%d ch",
				i, c.sampleRate, c.channels, clips[0].sampleRate, clips[0].channels)
		}
		total += len(c.samples)
	}

	samples := make([]int16, 0, total)
	for _, c := range clips {
		samples = append(samples, c.samples...)
	}

	return &Clip{
		samples:    samples,
		sampleRate: clips[0].sampleRate,
		channels:   clips[0].channels,
	}, nil
}

// Slice returns the sub-clip covering frames [start, end). Frame indices
// are per-channel positions, not raw sample offsets.
func (c *Clip) Slice(start, end int) (*Clip, error) {
	if start < 0 || end > c.Frames() || start > end {
		return nil, fmt.Errorf("frame range [%d, %d) out of bounds for %d frames", start, end, c.Frames())
	}

	return &Clip{
		samples:    c.samples[start*c.channels : end*c.channels],
		sampleRate: c.sampleRate,
		channels:   c.channels,
	}, nil
}

// Samples returns the interleaved PCM samples. Callers must not modify
// the returned slice.
func (c *Clip) Samples() []int16 {
	return c.samples
}

// SampleRate returns the sample rate in Hz.
func (c *Clip) SampleRate() int {
	return c.sampleRate
}

// Channels returns the channel count.
func (c *Clip) Channels() int {
	return c.channels
}

// Frames returns the number of per-channel sample frames.
func (c *Clip) Frames() int {
	return len(c.samples) / c.channels
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return float64(c.Frames()) / float64(c.sampleRate)
}

package segment

import (
	"fmt"
	"math"
	"time"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

const (
	// PadDuration is the fixed run of digital silence synthesized on
	// each side of every emitted clip.
	PadDuration = 500 * time.Millisecond

	// windowDuration is the energy analysis granularity. Silence runs
	// are measured in whole windows, so minimum silence durations are
	// effectively rounded to this resolution.
	windowDuration = 10 * time.Millisecond
)

// Segmenter splits a recording at silence boundaries.
type Segmenter struct {
	minSilence time.Duration
	threshold  float64 // dBFS, negative relative to full scale
	pad        time.Duration
}

// boundary marks a non-silent frame region [start, end). It never
// leaves this package.
type boundary struct {
	start int
	end   int
}

// New creates a segmenter. minSilence is the shortest silence run that
// splits; thresholdDBFS is the energy level at or below which a window
// counts as silent.
func New(minSilence time.Duration, thresholdDBFS float64) (*Segmenter, error) {
	if minSilence <= 0 {
		return nil, fmt.Errorf("min silence duration must be positive, got %v", minSilence)
	}

	if thresholdDBFS >= 0 {
		return nil, fmt.Errorf("silence threshold must be negative dBFS, got %f", thresholdDBFS)
	}

	return &Segmenter{
		minSilence: minSilence,
		threshold:  thresholdDBFS,
		pad:        PadDuration,
	}, nil
}

// Segment scans the clip for silence runs of at least the configured
// minimum duration and returns the regions between them, each padded
// with digital silence on both sides. An entirely silent clip yields
// zero segments; a clip with no qualifying silence yields exactly one.
func (s *Segmenter) Segment(clip *audio.Clip) ([]*audio.Clip, error) {
	if clip == nil || clip.Duration() <= 0 {
		return nil, fmt.Errorf("clip must have positive duration")
	}

	boundaries := s.detect(clip)

	segments := make([]*audio.Clip, 0, len(boundaries))
	for _, b := range boundaries {
		inner, err := clip.Slice(b.start, b.end)
		if err != nil {
			return nil, fmt.Errorf("failed to slice segment [%d, %d): %w", b.start, b.end, err)
		}

		pad := audio.Silence(s.pad, clip.SampleRate(), clip.Channels())
		padded, err := audio.Concat(pad, inner, pad)
		if err != nil {
			return nil, fmt.Errorf("failed to pad segment [%d, %d): %w", b.start, b.end, err)
		}

		segments = append(segments, padded)
	}

	return segments, nil
}

// detect returns the non-silent frame regions in order of appearance.
func (s *Segmenter) detect(clip *audio.Clip) []boundary {
	windowFrames := int(float64(clip.SampleRate()) * windowDuration.Seconds())
	if windowFrames < 1 {
		windowFrames = 1
	}

	minSilenceWindows := int(s.minSilence / windowDuration)
	if minSilenceWindows < 1 {
		minSilenceWindows = 1
	}

	totalFrames := clip.Frames()
	numWindows := (totalFrames + windowFrames - 1) / windowFrames

	silent := make([]bool, numWindows)
	for w := 0; w < numWindows; w++ {
		start := w * windowFrames
		end := start + windowFrames
		if end > totalFrames {
			end = totalFrames
		}
		silent[w] = windowDBFS(clip, start, end) <= s.threshold
	}

	// Collect maximal silence runs long enough to qualify as splits.
	// Shorter gaps stay inside their segment.
	var splits []boundary
	runStart := -1
	for w := 0; w <= numWindows; w++ {
		if w < numWindows && silent[w] {
			if runStart < 0 {
				runStart = w
			}
			continue
		}

		if runStart >= 0 && w-runStart >= minSilenceWindows {
			splits = append(splits, boundary{start: runStart, end: w})
		}
		runStart = -1
	}

	// Segments are the complement of the qualifying silence runs.
	var boundaries []boundary
	prev := 0
	for _, sp := range splits {
		boundaries = append(boundaries, boundary{start: prev, end: sp.start})
		prev = sp.end
	}
	boundaries = append(boundaries, boundary{start: prev, end: numWindows})

	// Convert window indices to frame offsets, dropping empty segments.
	out := boundaries[:0]
	for _, b := range boundaries {
		fb := boundary{
			start: b.start * windowFrames,
			end:   min(b.end*windowFrames, totalFrames),
		}
		if fb.end > fb.start {
			out = append(out, fb)
		}
	}

	return out
}

// windowDBFS computes the RMS energy of frames [start, end) in decibels
// relative to full scale. Pure digital silence maps to -inf.
func windowDBFS(clip *audio.Clip, start, end int) float64 {
	samples := clip.Samples()
	channels := clip.Channels()

	var sum float64
	n := 0
	for i := start * channels; i < end*channels; i++ {
		v := float64(samples[i])
		sum += v * v
		n++
	}

	if n == 0 {
		return math.Inf(-1)
	}

	rms := math.Sqrt(sum / float64(n))
	if rms == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(rms/float64(math.MaxInt16))
}

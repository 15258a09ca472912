package segment

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

const testRate = 8000

// waveform builds a mono clip from alternating regions. Each region is
// (durationSeconds, loud); loud regions are filled with a constant
// amplitude well above any reasonable silence threshold.
func waveform(t *testing.T, regions ...struct {
	seconds float64
	loud    bool
}) *audio.Clip {
	t.Helper()

	var samples []int16
	for _, r := range regions {
		frames := int(r.seconds * testRate)
		for i := 0; i < frames; i++ {
			if r.loud {
				samples = append(samples, 8000)
			} else {
				samples = append(samples, 0)
			}
		}
	}

	clip, err := audio.NewClip(samples, testRate, 1)
	if err != nil {
		t.Fatalf("Failed to build waveform: %v", err)
	}
	return clip
}

func region(seconds float64, loud bool) struct {
	seconds float64
	loud    bool
} {
	return struct {
		seconds float64
		loud    bool
	}{seconds, loud}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		minSilence time.Duration
		threshold  float64
		expectErr  bool
	}{
		{"valid parameters", 500 * time.Millisecond, -48, false},
		{"zero min silence", 0, -48, true},
		{"negative min silence", -time.Second, -48, true},
		{"non-negative threshold", 500 * time.Millisecond, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.minSilence, tt.threshold)
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestSegmentScenario(t *testing.T) {
	// 10 seconds: silence 0-1s, speech 1-3s, silence 3-4s, speech 4-9s,
	// silence 9-10s. With a 500ms minimum silence this yields exactly
	// two segments of 2s and 5s, padded to 3s and 6s.
	clip := waveform(t,
		region(1, false),
		region(2, true),
		region(1, false),
		region(5, true),
		region(1, false),
	)

	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	clips, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(clips) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(clips))
	}

	wantDurations := []float64{3.0, 6.0}
	for i, c := range clips {
		if math.Abs(c.Duration()-wantDurations[i]) > 1e-9 {
			t.Errorf("Segment %d: expected duration %vs, got %vs", i, wantDurations[i], c.Duration())
		}
	}
}

func TestSegmentEntirelySilent(t *testing.T) {
	clip := waveform(t, region(3, false))

	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	clips, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(clips) != 0 {
		t.Errorf("Expected zero segments for silent input, got %d", len(clips))
	}
}

func TestSegmentEntirelyLoud(t *testing.T) {
	clip := waveform(t, region(2, true))

	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	clips, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(clips) != 1 {
		t.Fatalf("Expected exactly one segment, got %d", len(clips))
	}

	// Padding invariant: output = 2 x pad + inner.
	want := 2*PadDuration.Seconds() + 2.0
	if math.Abs(clips[0].Duration()-want) > 1e-9 {
		t.Errorf("Expected padded duration %vs, got %vs", want, clips[0].Duration())
	}
}

func TestSegmentShortGapDoesNotSplit(t *testing.T) {
	// A 200ms gap is below the 500ms minimum and must stay inside the
	// segment.
	clip := waveform(t,
		region(1, true),
		region(0.2, false),
		region(1, true),
	)

	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	clips, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(clips) != 1 {
		t.Fatalf("Expected one segment across the short gap, got %d", len(clips))
	}

	want := 2*PadDuration.Seconds() + 2.2
	if math.Abs(clips[0].Duration()-want) > 1e-9 {
		t.Errorf("Expected duration %vs, got %vs", want, clips[0].Duration())
	}
}

func TestSegmentDeterminism(t *testing.T) {
	clip := waveform(t,
		region(0.7, false),
		region(1.3, true),
		region(0.9, false),
		region(2.1, true),
	)

	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	first, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	second, err := seg.Segment(clip)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Run counts differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if !reflect.DeepEqual(first[i].Samples(), second[i].Samples()) {
			t.Errorf("Segment %d differs between identical runs", i)
		}
	}
}

func TestSegmentSilenceMonotonicity(t *testing.T) {
	clip := waveform(t,
		region(1, true),
		region(0.6, false),
		region(1, true),
		region(1.5, false),
		region(1, true),
	)

	counts := make([]int, 0, 4)
	for _, minSilence := range []time.Duration{
		300 * time.Millisecond,
		700 * time.Millisecond,
		1200 * time.Millisecond,
		2 * time.Second,
	} {
		seg, err := New(minSilence, -48)
		if err != nil {
			t.Fatalf("Failed to create segmenter: %v", err)
		}

		clips, err := seg.Segment(clip)
		if err != nil {
			t.Fatalf("Segment failed at %v: %v", minSilence, err)
		}
		counts = append(counts, len(clips))
	}

	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("Clip count increased from %d to %d when min silence grew", counts[i-1], counts[i])
		}
	}
}

func TestSegmentNilClip(t *testing.T) {
	seg, err := New(500*time.Millisecond, -48)
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	if _, err := seg.Segment(nil); err == nil {
		t.Error("Expected error for nil clip")
	}
}

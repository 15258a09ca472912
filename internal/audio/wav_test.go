package audio

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	clip, err := NewClip(make([]int16, 8000), 8000, 1)
	if err != nil {
		t.Fatalf("Failed to create clip: %v", err)
	}

	data, err := EncodeWAV(clip)
	if err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}

	if len(data) != 44+8000*2 {
		t.Errorf("Expected %d bytes, got %d", 44+8000*2, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		t.Error("Missing RIFF header")
	}

	if string(data[8:12]) != "WAVE" {
		t.Error("Missing WAVE format")
	}

	if err := ValidateWAV(data); err != nil {
		t.Errorf("Encoded WAV failed validation: %v", err)
	}
}

func TestEncodeWAVEmptyClip(t *testing.T) {
	if _, err := EncodeWAV(nil); err == nil {
		t.Error("Expected error encoding nil clip")
	}
}

func TestDecodeWAVPreservesFormat(t *testing.T) {
	samples := make([]int16, 4410*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	clip, err := NewClip(samples, 44100, 2)
	if err != nil {
		t.Fatalf("Failed to create clip: %v", err)
	}

	data, err := EncodeWAV(clip)
	if err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}

	decoded, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("Failed to decode WAV: %v", err)
	}

	if decoded.SampleRate() != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", decoded.SampleRate())
	}

	if decoded.Channels() != 2 {
		t.Errorf("Expected 2 channels, got %d", decoded.Channels())
	}

	if decoded.Frames() != 4410 {
		t.Errorf("Expected 4410 frames, got %d", decoded.Frames())
	}

	if math.Abs(decoded.Duration()-0.1) > 1e-9 {
		t.Errorf("Expected duration 0.1s, got %f", decoded.Duration())
	}
}

func TestDecodeWAVMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "too short", data: []byte("RIFF")},
		{name: "not a wav", data: make([]byte, 64)},
		{
			name: "riff but no wave",
			data: append([]byte("RIFFxxxxJUNK"), make([]byte, 64)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWAV(tt.data)
			if err == nil {
				t.Fatal("Expected decode error")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got: %v", err)
			}
		})
	}
}

func TestIsClipFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"chunk0001.wav", true},
		{"chunk0001.mp3", true},
		{"CHUNK.WAV", true},
		{"folder.csv", false},
		{"notes.txt", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsClipFile(tt.name); got != tt.want {
			t.Errorf("IsClipFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

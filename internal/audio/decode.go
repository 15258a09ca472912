package audio

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Decode target for compressed formats. Everything that is not native
// WAV is normalized to mono at this rate on the way in.
const (
	compressedSampleRate = 44100
	compressedChannels   = 1
)

var clipExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
}

// IsClipFile reports whether a file name carries a supported audio
// extension.
func IsClipFile(name string) bool {
	return clipExtensions[strings.ToLower(filepath.Ext(name))]
}

// DecodeFile decodes an audio file into a clip. WAV files are decoded
// natively; MP3 files are decoded through ffmpeg.
func DecodeFile(path string) (*Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return DecodeWAV(data)

	case ".mp3":
		return decodeWithFFmpeg(path)

	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrDecode, filepath.Ext(path))
	}
}

// EncodeToFile writes a clip to disk as a WAV file.
func EncodeToFile(clip *Clip, path string) error {
	data, err := EncodeWAV(clip)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// decodeWithFFmpeg runs ffmpeg to decode a compressed file to raw PCM
// int16 samples.
func decodeWithFFmpeg(path string) (*Clip, error) {
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", compressedSampleRate),
		"-ac", fmt.Sprintf("%d", compressedChannels),
		"-loglevel", "error",
		"pipe:1",
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg decode %s: %v", ErrDecode, path, err)
	}

	// Ensure even byte count for int16 alignment
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no audio for %s", ErrDecode, path)
	}

	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[i*2 : i*2+2]))
	}

	return NewClip(samples, compressedSampleRate, compressedChannels)
}

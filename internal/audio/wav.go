package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// WAVHeader represents the header structure of a WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// EncodeWAV encodes a PCM-16 clip into WAV format
func EncodeWAV(clip *Clip) ([]byte, error) {
	if clip == nil || len(clip.Samples()) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio clip")
	}

	numChannels := uint16(clip.Channels())
	bitsPerSample := uint16(16)
	dataSize := uint32(len(clip.Samples()) * BytesPerSample)
	fileSize := 36 + dataSize // WAV header is 44 bytes, data starts at offset 44

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     fileSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   numChannels,
		SampleRate:    uint32(clip.SampleRate()),
		ByteRate:      uint32(clip.SampleRate()) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(clip.Samples())*BytesPerSample))

	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, clip.Samples()); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeWAV decodes WAV format data into a PCM-16 clip
func DecodeWAV(data []byte) (*Clip, error) {
	if len(data) < 44 {
		return nil, fmt.Errorf("%w: WAV data too short, need at least 44 bytes, got %d", ErrDecode, len(data))
	}

	buf := bytes.NewReader(data)
	var header WAVHeader

	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read WAV header: %v", ErrDecode, err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF header", ErrDecode)
	}

	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing WAVE format", ErrDecode)
	}

	if string(header.Subchunk1ID[:]) != "fmt " {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrDecode)
	}

	if string(header.Subchunk2ID[:]) != "data" {
		return nil, fmt.Errorf("%w: missing data chunk", ErrDecode)
	}

	if header.AudioFormat != 1 {
		return nil, fmt.Errorf("%w: unsupported audio format %d (only PCM is supported)", ErrDecode, header.AudioFormat)
	}

	if header.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d (only 16-bit is supported)", ErrDecode, header.BitsPerSample)
	}

	if header.NumChannels < 1 {
		return nil, fmt.Errorf("%w: invalid channel count %d", ErrDecode, header.NumChannels)
	}

	numSamples := int(header.Subchunk2Size) / BytesPerSample
	if numSamples <= 0 {
		return nil, fmt.Errorf("%w: no audio data found", ErrDecode)
	}

	samples := make([]int16, numSamples)
	if err := binary.Read(buf, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("%w: failed to read audio samples: %v", ErrDecode, err)
	}

	return NewClip(samples, int(header.SampleRate), int(header.NumChannels))
}

// ValidateWAV validates a WAV file format without decoding the audio data
func ValidateWAV(data []byte) error {
	if len(data) < 44 {
		return fmt.Errorf("%w: WAV data too short, need at least 44 bytes, got %d", ErrDecode, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("%w: missing RIFF header", ErrDecode)
	}

	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("%w: missing WAVE format", ErrDecode)
	}

	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("%w: missing fmt chunk", ErrDecode)
	}

	if string(data[36:40]) != "data" {
		return fmt.Errorf("%w: missing data chunk", ErrDecode)
	}

	return nil
}

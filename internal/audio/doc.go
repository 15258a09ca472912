// Package audio provides the decoded PCM clip entity, a WAV codec, and
// file decode/encode capabilities. WAV files are handled natively;
// compressed formats are decoded through an external ffmpeg process.
package audio

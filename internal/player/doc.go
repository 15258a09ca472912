// Package player abstracts raw-buffer device playback. The Player
// interface allows the playback cursor to be tested without audio
// hardware; the PortAudio implementation drives the default output
// device.
package player

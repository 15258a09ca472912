//go:build !cgo

package player

import "fmt"

// NewPortAudio requires cgo for the PortAudio bindings; in cgo-less
// builds it reports that the device player is unavailable.
func NewPortAudio() (Player, error) {
	return nil, fmt.Errorf("portaudio playback requires a cgo-enabled build")
}

package player

import (
	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

// Handle is an active playback. Stop is idempotent and blocks until the
// device has released the stream, so a caller that stops before starting
// the next playback never holds two live handles.
type Handle interface {
	// Stop terminates playback. Calling Stop on a finished or already
	// stopped handle is a no-op.
	Stop() error

	// Done is closed when playback finishes, whether it ran to the end
	// of the buffer or was stopped.
	Done() <-chan struct{}
}

// Player starts device playback of decoded clips. Implementations own
// the underlying device; at most one component should drive a Player at
// a time.
type Player interface {
	// Play starts asynchronous playback of the clip and returns a
	// handle owning the live stream.
	Play(clip *audio.Clip) (Handle, error)

	// Close releases the device.
	Close() error
}

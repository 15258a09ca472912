package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

// Extension is the fixed encoded format for exported clips.
const Extension = ".wav"

// minIndexWidth keeps file names sortable for up to 10000 clips; larger
// batches widen the index automatically.
const minIndexWidth = 4

// Exporter persists clips to disk in segmentation order.
type Exporter struct {
	log *slog.Logger
}

// New creates an exporter. A nil logger disables logging.
func New(log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{log: log}
}

// Export writes one file per clip into destDir, creating the directory
// if needed. Names are chunk0000.wav, chunk0001.wav, ... matching the
// input order. Same-named files are overwritten without any collision
// check; on a write failure the files already written remain on disk.
// Returns the number of clips written.
func (e *Exporter) Export(clips []*audio.Clip, destDir string) (int, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create destination %s: %w", destDir, err)
	}

	width := indexWidth(len(clips))

	for i, clip := range clips {
		name := fmt.Sprintf("chunk%0*d%s", width, i, Extension)
		path := filepath.Join(destDir, name)

		if err := audio.EncodeToFile(clip, path); err != nil {
			return i, fmt.Errorf("failed to export clip %d: %w", i, err)
		}

		e.log.Debug("clip exported",
			slog.String("file", name),
			slog.Float64("duration_sec", clip.Duration()),
		)
	}

	return len(clips), nil
}

// indexWidth returns the zero-pad width needed for count clips.
func indexWidth(count int) int {
	if d := digits(count - 1); d > minIndexWidth {
		return d
	}
	return minIndexWidth
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

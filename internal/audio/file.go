package audio

import (
	"fmt"
	"path/filepath"
	"sync"
)

// File is a named clip on disk. Identity is the file path; ordering is
// by file name. The decoded clip is loaded lazily and cached.
type File struct {
	path string
	name string

	mu   sync.Mutex
	clip *Clip
}

// NewFile constructs a File for the given path without touching disk.
func NewFile(path string) *File {
	return &File{
		path: path,
		name: filepath.Base(path),
	}
}

// Path returns the full file path.
func (f *File) Path() string {
	return f.path
}

// Name returns the file name including extension.
func (f *File) Name() string {
	return f.name
}

// Load decodes the file, caching the result for subsequent calls.
func (f *File) Load() (*Clip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clip != nil {
		return f.clip, nil
	}

	clip, err := DecodeFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load clip %s: %w", f.name, err)
	}

	f.clip = clip
	return clip, nil
}

// Duration returns the clip length in seconds, decoding the file if
// necessary.
func (f *File) Duration() (float64, error) {
	clip, err := f.Load()
	if err != nil {
		return 0, err
	}
	return clip.Duration(), nil
}

func (f *File) String() string {
	return f.name
}

package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
)

// ErrIndexOutOfRange indicates a data-row index outside [1, N].
var ErrIndexOutOfRange = errors.New("ledger index out of range")

// Header is the fixed first row of every ledger file.
var Header = []string{"file_name", "classification", "file_length(sec)", "date"}

const (
	ledgerExtension = ".csv"
	timeLayout      = "2006-01-02 15:04:05"
)

// Ledger is a CSV-backed classification table for one folder of clips.
// The file on disk is the sole durable store: every mutation rewrites
// the whole table synchronously. The mutex makes each read-modify-write
// atomic with respect to this instance; concurrent instances over the
// same folder are unsupported and race last-writer-wins.
type Ledger struct {
	folder string
	path   string
	files  []*audio.File

	mu  sync.Mutex
	log *slog.Logger
	now func() time.Time
}

// Open scans folder for clip files, excluding any CSV entry, and binds
// the ledger to them in sorted name order. An existing ledger file is
// adopted as-is; otherwise a fresh one is written with one row per clip.
func Open(folder string, log *slog.Logger) (*Ledger, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	var files []*audio.File
	existing := ""
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ledgerExtension) {
			if existing == "" {
				existing = name
			}
			continue
		}

		if !audio.IsClipFile(name) {
			continue
		}

		files = append(files, audio.NewFile(filepath.Join(folder, name)))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	l := &Ledger{
		folder: folder,
		files:  files,
		log:    log,
		now:    time.Now,
	}

	if existing != "" {
		// Trust the adopted file's row order; it is not re-validated
		// against the current listing.
		l.path = filepath.Join(folder, existing)
		log.Info("adopted existing ledger", slog.String("file", existing))
		return l, nil
	}

	l.path = filepath.Join(folder, filepath.Base(folder)+ledgerExtension)
	if err := l.create(); err != nil {
		return nil, err
	}

	log.Info("created new ledger",
		slog.String("file", filepath.Base(l.path)),
		slog.Int("rows", len(files)),
	)

	return l, nil
}

// create writes a fresh ledger with the header row and one empty data
// row per clip file.
func (l *Ledger) create() error {
	rows := [][]string{Header}
	stamp := l.now().Format(timeLayout)

	for _, f := range l.files {
		length, err := f.Duration()
		if err != nil {
			return fmt.Errorf("failed to measure %s: %w", f.Name(), err)
		}

		rows = append(rows, []string{
			f.Name(),
			"",
			fmt.Sprintf("%.3f", length),
			stamp,
		})
	}

	return l.writeAll(rows)
}

// Classification returns the stored classification of data row index
// (1-based).
func (l *Ledger) Classification(index int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readAll()
	if err != nil {
		return "", err
	}

	if index < 1 || index >= len(rows) {
		return "", fmt.Errorf("%w: %d (rows 1..%d)", ErrIndexOutOfRange, index, len(rows)-1)
	}

	return rows[index][1], nil
}

// SetClassification rewrites the classification of data row index and
// refreshes its timestamp, flushing the whole table back to disk. Index
// 0 addresses the header row and is silently dropped.
func (l *Ledger) SetClassification(index int, classification string) error {
	if index == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readAll()
	if err != nil {
		return err
	}

	if index < 1 || index >= len(rows) {
		return fmt.Errorf("%w: %d (rows 1..%d)", ErrIndexOutOfRange, index, len(rows)-1)
	}

	rows[index][1] = classification
	rows[index][3] = l.now().Format(timeLayout)

	if err := l.writeAll(rows); err != nil {
		return err
	}

	l.log.Debug("classification updated",
		slog.Int("row", index),
		slog.String("classification", classification),
	)

	return nil
}

// Len returns the number of data rows.
func (l *Ledger) Len() int {
	return len(l.files)
}

// Files returns the sorted clip files the ledger was built from. The
// playback cursor shares this exact ordering.
func (l *Ledger) Files() []*audio.File {
	return l.files
}

// FileNames returns the sorted clip file names, one per data row.
func (l *Ledger) FileNames() []string {
	names := make([]string, len(l.files))
	for i, f := range l.files {
		names[i] = f.Name()
	}
	return names
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

func (l *Ledger) readAll() ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", l.path, err)
	}

	return rows, nil
}

func (l *Ledger) writeAll(rows [][]string) error {
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("failed to create ledger %s: %w", l.path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write ledger %s: %w", l.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close ledger %s: %w", l.path, err)
	}

	return nil
}

package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Hcaziah/AudioClassifier/internal/ledger"
	"github.com/Hcaziah/AudioClassifier/internal/player"
	"github.com/Hcaziah/AudioClassifier/internal/queue"
)

// Session is one review pass over a folder of clips. The ledger and the
// cursor are built from the same scan, which pins the shared index
// space: row i in the ledger is the clip at cursor position i.
type Session struct {
	folder string
	ledger *ledger.Ledger
	cursor *queue.Cursor
	log    *slog.Logger
}

// Open scans folder once, opening (or creating) its ledger and building
// the playback cursor over the same ordered file list.
func Open(folder string, p player.Player, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	led, err := ledger.Open(folder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	cursor, err := queue.New(led.Files(), p, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build cursor: %w", err)
	}

	log.Info("review session opened",
		slog.String("folder", folder),
		slog.Int("clips", cursor.Len()),
	)

	return &Session{
		folder: folder,
		ledger: led,
		cursor: cursor,
		log:    log,
	}, nil
}

// Current returns the cursor position and the clip name at it.
func (s *Session) Current() (int, string) {
	return s.cursor.Current(), s.cursor.CurrentFile().Name()
}

// Len returns the number of clips under review.
func (s *Session) Len() int {
	return s.cursor.Len()
}

// Classification returns the stored classification of the current clip.
func (s *Session) Classification() (string, error) {
	return s.ledger.Classification(s.cursor.Current())
}

// Classify persists a classification for the current clip.
func (s *Session) Classify(classification string) error {
	return s.ledger.SetClassification(s.cursor.Current(), classification)
}

// Next persists the pending classification for the current clip, then
// advances and plays the next one, returning its stored classification.
// At the last clip the classification is still persisted but the cursor
// does not move, and queue.ErrAtBounds is returned.
func (s *Session) Next(pending string) (string, error) {
	if err := s.Classify(pending); err != nil {
		return "", err
	}

	if err := s.cursor.Advance(); err != nil {
		return "", err
	}

	return s.Classification()
}

// Prev is the mirror of Next, moving backwards.
func (s *Session) Prev(pending string) (string, error) {
	if err := s.Classify(pending); err != nil {
		return "", err
	}

	if err := s.cursor.Retreat(); err != nil {
		return "", err
	}

	return s.Classification()
}

// Replay plays the current clip again.
func (s *Session) Replay() error {
	return s.cursor.PlayCurrent()
}

// Stop terminates any active playback.
func (s *Session) Stop() {
	s.cursor.StopCurrent()
}

// CanAdvance reports whether Next can move.
func (s *Session) CanAdvance() bool {
	return s.cursor.CanAdvance()
}

// CanRetreat reports whether Prev can move.
func (s *Session) CanRetreat() bool {
	return s.cursor.CanRetreat()
}

// LedgerPath returns the path of the backing ledger file.
func (s *Session) LedgerPath() string {
	return s.ledger.Path()
}

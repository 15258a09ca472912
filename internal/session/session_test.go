package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
	"github.com/Hcaziah/AudioClassifier/internal/ledger"
	"github.com/Hcaziah/AudioClassifier/internal/player"
	"github.com/Hcaziah/AudioClassifier/internal/queue"
)

type nullPlayer struct {
	mu    sync.Mutex
	plays int
}

type nullHandle struct {
	once sync.Once
	done chan struct{}
}

func (p *nullPlayer) Play(_ *audio.Clip) (player.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	return &nullHandle{done: make(chan struct{})}, nil
}

func (p *nullPlayer) Close() error { return nil }

func (h *nullHandle) Stop() error {
	h.once.Do(func() { close(h.done) })
	return nil
}

func (h *nullHandle) Done() <-chan struct{} { return h.done }

// clipFolder builds a folder with the given file names, each holding a
// short valid WAV clip.
func clipFolder(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	clip, err := audio.NewClip(make([]int16, 800), 8000, 1)
	require.NoError(t, err)

	data, err := audio.EncodeWAV(clip)
	require.NoError(t, err)

	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestOpenAlignsLedgerAndCursor(t *testing.T) {
	dir := clipFolder(t, "c.wav", "a.wav", "b.wav")

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)

	// Row i and cursor index i must name the same file for every row.
	assert.Equal(t, s.ledger.FileNames(), s.cursor.FileNames())
	assert.Equal(t, []string{"a.wav", "b.wav", "c.wav"}, s.ledger.FileNames())

	index, name := s.Current()
	assert.Equal(t, 1, index)
	assert.Equal(t, "a.wav", name)
}

func TestNextPersistsAndLoads(t *testing.T) {
	dir := clipFolder(t, "a.wav", "b.wav")

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)
	defer s.Stop()

	stored, err := s.Next("drop")
	require.NoError(t, err)
	assert.Empty(t, stored, "row 2 starts unclassified")

	index, name := s.Current()
	assert.Equal(t, 2, index)
	assert.Equal(t, "b.wav", name)

	// The classification typed at row 1 was persisted before moving.
	got, err := s.ledger.Classification(1)
	require.NoError(t, err)
	assert.Equal(t, "drop", got)
}

func TestPrevReturnsStoredClassification(t *testing.T) {
	dir := clipFolder(t, "a.wav", "b.wav")

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)
	defer s.Stop()

	_, err = s.Next("keep")
	require.NoError(t, err)

	stored, err := s.Prev("maybe")
	require.NoError(t, err)
	assert.Equal(t, "keep", stored, "navigating back surfaces the stored value")

	got, err := s.ledger.Classification(2)
	require.NoError(t, err)
	assert.Equal(t, "maybe", got)
}

func TestClassifyEitherWriteOrder(t *testing.T) {
	dir := clipFolder(t, "a.wav", "b.wav")

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)
	defer s.Stop()

	require.NoError(t, s.ledger.SetClassification(2, "keep"))
	require.NoError(t, s.ledger.SetClassification(1, "drop"))

	first, err := s.ledger.Classification(1)
	require.NoError(t, err)
	second, err := s.ledger.Classification(2)
	require.NoError(t, err)

	assert.Equal(t, "drop", first)
	assert.Equal(t, "keep", second)
}

func TestNavigationBounds(t *testing.T) {
	dir := clipFolder(t, "a.wav")

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)
	defer s.Stop()

	assert.False(t, s.CanAdvance())
	assert.False(t, s.CanRetreat())

	_, err = s.Next("x")
	assert.True(t, errors.Is(err, queue.ErrAtBounds))

	_, err = s.Prev("x")
	assert.True(t, errors.Is(err, queue.ErrAtBounds))

	index, _ := s.Current()
	assert.Equal(t, 1, index)
}

func TestReplayStartsPlayback(t *testing.T) {
	dir := clipFolder(t, "a.wav")
	np := &nullPlayer{}

	s, err := Open(dir, np, nil)
	require.NoError(t, err)
	defer s.Stop()

	require.NoError(t, s.Replay())
	require.NoError(t, s.Replay())

	assert.Equal(t, 2, np.plays)
}

func TestSessionIgnoresLedgerFile(t *testing.T) {
	dir := clipFolder(t, "a.wav", "b.wav")

	// A pre-existing ledger must not appear in the clip list.
	led, err := ledger.Open(dir, nil)
	require.NoError(t, err)
	require.FileExists(t, led.Path())

	s, err := Open(dir, &nullPlayer{}, nil)
	require.NoError(t, err)
	defer s.Stop()

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a.wav", "b.wav"}, s.cursor.FileNames())
}

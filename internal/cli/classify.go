package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hcaziah/AudioClassifier/internal/metrics"
	"github.com/Hcaziah/AudioClassifier/internal/player"
	"github.com/Hcaziah/AudioClassifier/internal/queue"
	"github.com/Hcaziah/AudioClassifier/internal/session"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <folder>",
		Short: "Review a folder of clips and record a classification per clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args[0])
		},
	}
}

func runClassify(cmd *cobra.Command, folder string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	m := serveMetrics(cfg.Metrics, log)

	var p player.Player
	if cfg.Playback.Enabled {
		p, err = player.NewPortAudio()
		if err != nil {
			return fmt.Errorf("failed to open audio device: %w", err)
		}
	} else {
		log.Info("playback disabled, reviewing silently")
		p = player.Noop{}
	}
	defer func() { _ = p.Close() }()

	s, err := session.Open(folder, p, log)
	if err != nil {
		return err
	}
	defer s.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Ledger: %s\n", s.LedgerPath())
	fmt.Fprintln(cmd.OutOrStdout(), "Type a classification and press enter to move on.")
	fmt.Fprintln(cmd.OutOrStdout(), "Commands: :p previous, :r replay, :q quit")

	if err := s.Replay(); err != nil {
		log.Warn("initial playback failed", slog.String("error", err.Error()))
	}
	m.PlaybackStarts.Inc()

	return reviewLoop(cmd.InOrStdin(), cmd.OutOrStdout(), s, m)
}

// reviewLoop drives the line-based review prompt. The pending
// classification starts as the stored value of the current row and is
// persisted on every navigation, matching the review workflow of the
// classify screen.
func reviewLoop(in io.Reader, out io.Writer, s *session.Session, m *metrics.Metrics) error {
	pending, err := s.Classification()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)

	for {
		index, name := s.Current()
		fmt.Fprintf(out, "[%d/%d] %s (classification: %q) > ", index, s.Len(), name, pending)

		if !scanner.Scan() {
			return saveAndQuit(s, pending)
		}

		line := strings.TrimSpace(scanner.Text())

		switch line {
		case ":q":
			return saveAndQuit(s, pending)

		case ":r":
			if err := s.Replay(); err != nil {
				fmt.Fprintf(out, "playback failed: %v\n", err)
				continue
			}
			m.PlaybackStarts.Inc()

		case ":p":
			start := time.Now()
			stored, err := s.Prev(pending)
			if errors.Is(err, queue.ErrAtBounds) {
				fmt.Fprintln(out, "Already at the first clip.")
				continue
			}
			if err != nil {
				return err
			}
			m.LedgerWrites.Inc()
			m.LedgerWriteDuration.Observe(time.Since(start).Seconds())
			m.NavigationMoves.WithLabelValues("prev").Inc()
			m.PlaybackStarts.Inc()
			pending = stored

		default:
			if line != "" {
				pending = line
			}
			start := time.Now()
			stored, err := s.Next(pending)
			if errors.Is(err, queue.ErrAtBounds) {
				fmt.Fprintln(out, "Already at the last clip.")
				continue
			}
			if err != nil {
				return err
			}
			m.LedgerWrites.Inc()
			m.LedgerWriteDuration.Observe(time.Since(start).Seconds())
			m.NavigationMoves.WithLabelValues("next").Inc()
			m.PlaybackStarts.Inc()
			pending = stored
		}
	}
}

// saveAndQuit persists the in-progress classification before the
// session ends.
func saveAndQuit(s *session.Session, pending string) error {
	s.Stop()
	return s.Classify(pending)
}

package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hcaziah/AudioClassifier/internal/audio"
	"github.com/Hcaziah/AudioClassifier/internal/export"
	"github.com/Hcaziah/AudioClassifier/internal/segment"
)

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <audio-file>",
		Short: "Split a recording into clips at silence boundaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0])
		},
	}

	cmd.Flags().String("out", "", "Output directory (default: config output_dir)")
	cmd.Flags().Int("min-silence", 0, "Minimum silence in milliseconds (default: config)")
	cmd.Flags().Float64("threshold", 0, "Silence threshold in dBFS (default: config)")

	return cmd
}

func runSplit(cmd *cobra.Command, input string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	if ms, _ := cmd.Flags().GetInt("min-silence"); ms > 0 {
		cfg.Split.MinSilenceMS = ms
	}
	if th, _ := cmd.Flags().GetFloat64("threshold"); th < 0 {
		cfg.Split.ThresholdDBFS = th
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Split.OutputDir
	}

	m := serveMetrics(cfg.Metrics, log)

	log.Info("loading recording", slog.String("file", input))
	clip, err := audio.DecodeFile(input)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", input, err)
	}

	seg, err := segment.New(cfg.Split.GetMinSilence(), cfg.Split.ThresholdDBFS)
	if err != nil {
		return err
	}

	log.Info("splitting at silence boundaries",
		slog.Float64("duration_sec", clip.Duration()),
		slog.Int("min_silence_ms", cfg.Split.MinSilenceMS),
		slog.Float64("threshold_dbfs", cfg.Split.ThresholdDBFS),
	)

	clips, err := seg.Segment(clip)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}

	for _, c := range clips {
		m.SegmentsProduced.Inc()
		m.SegmentDuration.Observe(c.Duration())
	}

	// Clips land in a folder named after the recording.
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dest := filepath.Join(outDir, stem)

	written, err := export.New(log).Export(clips, dest)
	m.ClipsExported.Add(float64(written))
	if err != nil {
		m.ExportErrors.Inc()
		return fmt.Errorf("export failed after %d clips: %w", written, err)
	}

	log.Info("split complete",
		slog.Int("clips", written),
		slog.String("destination", dest),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d clips to %s\n", written, dest)
	return nil
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the audio classifier
type Metrics struct {
	// Segmentation metrics
	SegmentsProduced prometheus.Counter
	SegmentDuration  prometheus.Histogram

	// Export metrics
	ClipsExported prometheus.Counter
	ExportErrors  prometheus.Counter

	// Ledger metrics
	LedgerWrites        prometheus.Counter
	LedgerWriteDuration prometheus.Histogram

	// Playback metrics
	PlaybackStarts  prometheus.Counter
	NavigationMoves *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		SegmentsProduced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "audioclassifier_segments_produced_total",
			Help: "Total number of segments produced by silence splitting",
		}),
		SegmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "audioclassifier_segment_duration_seconds",
			Help:    "Duration of produced segments in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~4 minutes
		}),
		ClipsExported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "audioclassifier_clips_exported_total",
			Help: "Total number of clip files written to disk",
		}),
		ExportErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "audioclassifier_export_errors_total",
			Help: "Total number of clip export failures",
		}),
		LedgerWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "audioclassifier_ledger_writes_total",
			Help: "Total number of classification writes to the ledger",
		}),
		LedgerWriteDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "audioclassifier_ledger_write_duration_seconds",
			Help:    "Time spent rewriting the ledger file",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 0.1ms to ~1.6s
		}),
		PlaybackStarts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "audioclassifier_playback_starts_total",
			Help: "Total number of clip playbacks started",
		}),
		NavigationMoves: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "audioclassifier_navigation_moves_total",
			Help: "Total number of cursor moves by direction",
		}, []string{"direction"}),
	}
}

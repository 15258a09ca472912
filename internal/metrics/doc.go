// Package metrics defines the Prometheus instrumentation for
// segmentation, export, ledger, and playback activity.
package metrics

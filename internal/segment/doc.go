// Package segment implements silence-based segmentation of a decoded
// recording. It scans the waveform with fixed-size energy windows,
// detects silence runs at or below a dBFS threshold, and emits the
// non-silent regions as padded clips in their original order.
package segment

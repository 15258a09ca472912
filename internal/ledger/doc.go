// Package ledger maintains the durable CSV table mapping each clip in a
// folder to its human-assigned classification. Row order is fixed at
// creation time to match the sorted folder listing, so data row i always
// names the same file as playback cursor index i.
package ledger

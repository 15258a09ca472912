// Package session binds the classification ledger and the playback
// cursor to a single directory scan, so ledger row i and cursor index i
// always denote the same clip file for the whole review session.
package session

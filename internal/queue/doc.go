// Package queue implements the stateful playback cursor over an ordered
// list of clip files. The cursor owns at most one live playback handle
// and serializes navigation so overlapping moves cannot interleave.
package queue

// Package export writes segmented clips to a destination directory with
// deterministic zero-padded naming.
package export

// Package cli wires the split and classify commands. It is the thin
// collaborator layer over the core packages: flag parsing, config and
// logger setup, and the interactive review prompt live here.
package cli

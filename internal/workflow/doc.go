// Package workflow runs one rename invocation end to end.
//
// A Runner resolves the target, takes the per-target lock in apply mode,
// records a census of the tree, rejects unsupported files before anything is
// renamed, drives the renamer (with its optional playlist and tag passes) and
// finally verifies that the tree still holds every file and directory it
// started with. The resulting Summary is what the CLI renders.
package workflow

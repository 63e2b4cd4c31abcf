// Package renamer walks a media library tree and renames directories and
// files with a naming.RuleSet.
//
// The walk is depth-first: a directory is renamed before its children,
// subdirectories are handled before the files beside them, and every file at
// a level is classified before anything at that level changes. Playlists are
// handed to the playlist synchronizer so their entries follow the renamed
// files. Optional passes generate missing playlists and rewrite media tags
// once the tree is final.
//
// In dry-run mode the walker reports every change it would make and touches
// nothing. Conflicts are always fatal in apply mode; nothing is ever
// overwritten.
package renamer

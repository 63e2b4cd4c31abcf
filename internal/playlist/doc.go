// Package playlist keeps extended M3U playlists consistent with the media
// files they reference.
//
// The Synchronizer rewrites the path entries of an existing playlist with the
// same stem transform the file renamer applies, so every reference still
// resolves after a rename. The Generator writes a playlist for directories
// that hold audio but have none. Both honor dry-run mode and never overwrite
// an existing file.
package playlist

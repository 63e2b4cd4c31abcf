// Package media classifies library files by extension.
//
// The classifier decides how the tree walker treats every file it meets:
// audio and video files are renamed by stem, playlists are content
// synchronized, ignored files are passed through untouched, and anything else
// is unsupported. Extension matching is case-insensitive.
package media

// Package tagging rewrites the title and album tags of media files from
// their file names.
//
// Derive turns a file name into Metadata. The Editor compares it with the
// tags already present, and when they differ asks a writer (ffmpeg by
// default, or the native ID3v2 writer for mp3 files) to produce a hidden
// sibling that then replaces the original. A writer that leaves no output,
// or an empty one, is reported as a tag write failure.
package tagging

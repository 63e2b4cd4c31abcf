// Package census counts directories and files per extension across a tree so
// a rename run can prove it lost nothing.
//
// Take walks the tree once. Compare reports an integrity failure when any
// extension count dropped or the number of directories changed. Artifacts a
// run creates on purpose, such as generated playlists, are credited to the
// baseline with Credit before the comparison.
package census

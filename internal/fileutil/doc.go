// Package fileutil holds filesystem primitives that never overwrite data
// silently: a no-replace rename, atomic whole-file writes and a verified copy.
package fileutil

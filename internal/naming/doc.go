// Package naming normalizes path segments according to a configurable rule
// set.
//
// A RuleSet carries ordered replacement pairs and ordered removal strings.
// Transform applies replacements first, then removals, then collapses runs of
// whitespace and trims the result. Extended playlist directives (lines that
// begin with "#EXT") are never modified. TransformStem applies the same rules
// to a filename while leaving its extension untouched; the file renamer and
// the playlist synchronizer both rely on it so playlist references always
// track the names of the files they point at.
//
// The package performs no I/O.
package naming

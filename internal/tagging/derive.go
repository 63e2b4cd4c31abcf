package tagging

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filerename/internal/naming"
)

// AlbumSeparator splits "Album - Title" style names.
const AlbumSeparator = " - "

// Metadata is the tag pair the editor maintains.
type Metadata struct {
	Title string
	Album string
}

var shortWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "as": {}, "at": {}, "but": {}, "by": {}, "for": {},
	"in": {}, "nor": {}, "of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// Derive builds metadata from a file name. Text before the first separator is
// the album and the rest is the title; without a separator the album is
// empty.
func Derive(filename string) Metadata {
	stem, _ := naming.SplitStem(filepath.Base(filename))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.Join(strings.Fields(stem), " ")

	md := Metadata{Title: stem}
	if album, title, ok := strings.Cut(stem, AlbumSeparator); ok {
		album, title = strings.TrimSpace(album), strings.TrimSpace(title)
		if album != "" && title != "" {
			md = Metadata{Title: title, Album: album}
		}
	}
	md.Title = fixCase(md.Title)
	md.Album = fixCase(md.Album)
	return md
}

// fixCase title-cases text that is entirely upper or lower case. Mixed-case
// text is left as written.
func fixCase(text string) string {
	if !uniformCase(text) {
		return text
	}
	words := strings.Split(cases.Title(language.Und).String(strings.ToLower(text)), " ")
	for i, word := range words {
		if i == 0 {
			continue
		}
		if _, ok := shortWords[strings.ToLower(word)]; ok {
			words[i] = strings.ToLower(word)
		}
	}
	return strings.Join(words, " ")
}

func uniformCase(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	return text == strings.ToUpper(text) || text == strings.ToLower(text)
}

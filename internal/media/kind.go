package media

import (
	"path/filepath"
	"slices"
	"strings"
)

// Kind is the role a file plays in a managed library tree.
type Kind int

const (
	KindUnsupported Kind = iota
	KindAudio
	KindVideo
	KindPlaylist
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	case KindIgnored:
		return "ignored"
	default:
		return "unsupported"
	}
}

// Renamable reports whether files of this kind are renamed by stem.
func (k Kind) Renamable() bool {
	return k == KindAudio || k == KindVideo
}

// Extensions lists the managed extensions by kind.
type Extensions struct {
	Audio    []string
	Video    []string
	Playlist string
	Ignore   []string
}

// DefaultExtensions returns the built-in extension sets.
func DefaultExtensions() Extensions {
	return Extensions{
		Audio:    []string{".mp3"},
		Video:    []string{".mp4", ".m4v"},
		Playlist: ".m3u",
		Ignore:   []string{".iso"},
	}
}

// Classifier maps file extensions to kinds.
type Classifier struct {
	kinds    map[string]Kind
	playlist string
}

// NewClassifier builds a classifier from extension sets. Extensions are
// normalized to lower case with a leading dot. When a value appears in more
// than one set, the playlist extension wins, then audio, video and ignore in
// that order.
func NewClassifier(ext Extensions) Classifier {
	c := Classifier{kinds: make(map[string]Kind)}
	register := func(values []string, kind Kind) {
		for _, value := range values {
			key := NormalizeExt(value)
			if key == "" {
				continue
			}
			if _, exists := c.kinds[key]; !exists {
				c.kinds[key] = kind
			}
		}
	}
	c.playlist = NormalizeExt(ext.Playlist)
	if c.playlist != "" {
		c.kinds[c.playlist] = KindPlaylist
	}
	register(ext.Audio, KindAudio)
	register(ext.Video, KindVideo)
	register(ext.Ignore, KindIgnored)
	return c
}

// Classify returns the kind of the file at path, judged by its extension.
func (c Classifier) Classify(path string) Kind {
	if kind, ok := c.kinds[NormalizeExt(filepath.Ext(path))]; ok {
		return kind
	}
	return KindUnsupported
}

// PlaylistExt returns the normalized playlist extension.
func (c Classifier) PlaylistExt() string {
	return c.playlist
}

// ExtensionsOf returns the sorted extensions registered for kind.
func (c Classifier) ExtensionsOf(kind Kind) []string {
	var out []string
	for ext, k := range c.kinds {
		if k == kind {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}

// NormalizeExt lower-cases an extension and ensures a leading dot. An empty
// or dot-only value yields "".
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

package tagging

import (
	"errors"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// tagReader returns the current metadata of a file. ok is false when the file
// carries no readable tags.
type tagReader func(path string) (md Metadata, ok bool, err error)

func readTags(path string) (Metadata, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, false, err
	}
	defer func() { _ = file.Close() }()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Metadata{}, false, nil
		}
		return Metadata{}, false, err
	}
	return Metadata{
		Title: strings.TrimSpace(meta.Title()),
		Album: strings.TrimSpace(meta.Album()),
	}, true, nil
}

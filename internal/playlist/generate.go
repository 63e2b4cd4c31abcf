package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"filerename/internal/faults"
	"filerename/internal/fileutil"
	"filerename/internal/logging"
	"filerename/internal/media"
	"filerename/internal/naming"
)

// GenerateResult reports the outcome for one directory.
type GenerateResult struct {
	Path    string
	Entries []string
	// Created is true when the playlist was written.
	Created bool
	// Skipped explains why no playlist was needed.
	Skipped string
}

const (
	SkipExists  = "playlist exists"
	SkipNoAudio = "no audio files"
)

// Generator writes a playlist for directories that lack one.
type Generator struct {
	rules      naming.RuleSet
	classifier media.Classifier
	dryRun     bool
	logger     *slog.Logger
}

// NewGenerator constructs a playlist generator.
func NewGenerator(rules naming.RuleSet, classifier media.Classifier, dryRun bool, logger *slog.Logger) *Generator {
	return &Generator{
		rules:      rules,
		classifier: classifier,
		dryRun:     dryRun,
		logger:     logging.NewComponentLogger(logger, "playlist-generator"),
	}
}

// PathFor returns the playlist a directory should carry: its transformed
// basename plus the playlist extension. For an already renamed directory the
// transform is a no-op.
func (g *Generator) PathFor(dir string) string {
	name := g.rules.Transform(filepath.Base(filepath.Clean(dir)))
	return filepath.Join(dir, name+g.classifier.PlaylistExt())
}

// Generate creates the playlist for dir listing the audio files directly
// inside it in name order.
func (g *Generator) Generate(dir string) (GenerateResult, error) {
	target := g.PathFor(dir)
	result := GenerateResult{Path: target}

	exists, err := fileutil.Exists(target)
	if err != nil {
		return GenerateResult{}, faults.Wrap(nil, "playlist-generator", "stat", target, err)
	}
	if exists {
		result.Skipped = SkipExists
		g.logger.Debug("playlist already present", logging.String("path", target))
		return result, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return GenerateResult{}, faults.Wrap(faults.ErrNotFound, "playlist-generator", "read dir", dir, err)
		}
		return GenerateResult{}, faults.Wrap(nil, "playlist-generator", "read dir", dir, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		switch g.classifier.Classify(entry.Name()) {
		case media.KindAudio:
			result.Entries = append(result.Entries, entry.Name())
		case media.KindPlaylist:
			// A playlist not yet renamed (dry-run) that will take the target name.
			if filepath.Join(dir, g.rules.TransformStem(entry.Name())) == target {
				result.Entries = nil
				result.Skipped = SkipExists
				g.logger.Debug("playlist already present",
					logging.String("path", target),
					logging.String("current", entry.Name()),
				)
				return result, nil
			}
		}
	}
	if len(result.Entries) == 0 {
		result.Skipped = SkipNoAudio
		return result, nil
	}
	slices.Sort(result.Entries)

	if g.dryRun {
		g.logger.Info("would generate playlist",
			logging.String(logging.FieldEventType, "playlist_generate"),
			logging.String("path", target),
			logging.Int("entries", len(result.Entries)),
			logging.Bool("dry_run", true),
		)
		return result, nil
	}

	content := strings.Join(result.Entries, "\n") + "\n"
	if err := fileutil.CreateFileAtomic(target, []byte(content), 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return GenerateResult{}, faults.Wrap(faults.ErrConflict, "playlist-generator", "create",
				fmt.Sprintf("%s already exists", target), err)
		}
		return GenerateResult{}, faults.Wrap(nil, "playlist-generator", "create", target, err)
	}
	result.Created = true
	g.logger.Info("generated playlist",
		logging.String(logging.FieldEventType, "playlist_generate"),
		logging.String("path", target),
		logging.Int("entries", len(result.Entries)),
	)
	return result, nil
}

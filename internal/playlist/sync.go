package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"filerename/internal/faults"
	"filerename/internal/fileutil"
	"filerename/internal/logging"
	"filerename/internal/media"
	"filerename/internal/naming"
)

// SyncResult reports what Rewrite did to one playlist.
type SyncResult struct {
	// Path is the playlist location before the call.
	Path string
	// Target is the stem-transformed location.
	Target string
	// Lines lists the rewritten entries.
	Lines []LineChange
	// Applied is true when changes were written to disk.
	Applied bool
}

// Renamed reports whether the playlist file name changes.
func (r SyncResult) Renamed() bool {
	return r.Path != r.Target
}

// Changed reports whether the playlist file or its content changes.
func (r SyncResult) Changed() bool {
	return r.Renamed() || len(r.Lines) > 0
}

// Synchronizer rewrites playlist entries and renames the playlist itself.
type Synchronizer struct {
	rules      naming.RuleSet
	classifier media.Classifier
	dryRun     bool
	logger     *slog.Logger
}

// NewSynchronizer constructs a synchronizer sharing the renamer's rules.
func NewSynchronizer(rules naming.RuleSet, classifier media.Classifier, dryRun bool, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		rules:      rules,
		classifier: classifier,
		dryRun:     dryRun,
		logger:     logging.NewComponentLogger(logger, "playlist"),
	}
}

// Sync rewrites the playlist at path and returns its location afterwards. In
// dry-run mode nothing is written and the original path is returned.
func (s *Synchronizer) Sync(path string) (string, error) {
	result, err := s.Rewrite(path)
	if err != nil {
		return "", err
	}
	if result.Applied {
		return result.Target, nil
	}
	return result.Path, nil
}

// Rewrite performs the synchronization and reports the details.
func (s *Synchronizer) Rewrite(path string) (SyncResult, error) {
	if s.classifier.Classify(path) != media.KindPlaylist {
		return SyncResult{}, faults.Wrap(faults.ErrUnsupportedFile, "playlist", "sync",
			fmt.Sprintf("%s is not a %s playlist", path, s.classifier.PlaylistExt()), nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SyncResult{}, faults.Wrap(faults.ErrNotFound, "playlist", "sync", path, err)
		}
		return SyncResult{}, faults.Wrap(nil, "playlist", "stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return SyncResult{}, faults.Wrap(faults.ErrNotFound, "playlist", "sync", path+" is not a regular file", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SyncResult{}, faults.Wrap(nil, "playlist", "read", path, err)
	}
	doc := Parse(data)
	rewritten, lines := doc.Rewrite(s.rules)

	result := SyncResult{
		Path:   path,
		Target: filepath.Join(filepath.Dir(path), s.rules.TransformStem(filepath.Base(path))),
		Lines:  lines,
	}
	if result.Renamed() {
		if stem, _ := naming.SplitStem(filepath.Base(path)); s.rules.Transform(stem) == "" {
			return SyncResult{}, faults.Wrap(faults.ErrConflict, "playlist", "sync",
				fmt.Sprintf("%s would be renamed to an empty name", path), nil)
		}
	}

	for _, line := range lines {
		s.logger.Info("playlist entry transform",
			logging.String(logging.FieldEventType, "playlist_entry"),
			logging.String("playlist", path),
			logging.Int("line", line.Line),
			logging.String("from", line.From),
			logging.String("to", line.To),
		)
	}
	if result.Renamed() {
		s.logger.Info("playlist transform",
			logging.String(logging.FieldEventType, "playlist_rename"),
			logging.String("from", result.Path),
			logging.String("to", result.Target),
			logging.Bool("dry_run", s.dryRun),
		)
	}

	if !result.Changed() {
		return result, nil
	}

	if s.dryRun {
		if result.Renamed() {
			if taken, _ := destinationTaken(result.Path, result.Target); taken {
				s.logger.Warn("playlist destination already exists",
					logging.String(logging.FieldEventType, "rename_conflict"),
					logging.String("from", result.Path),
					logging.String("to", result.Target),
				)
			}
		}
		return result, nil
	}

	if err := s.write(result, rewritten.Bytes(), info.Mode().Perm()); err != nil {
		return SyncResult{}, err
	}
	result.Applied = true
	return result, nil
}

func (s *Synchronizer) write(result SyncResult, data []byte, perm os.FileMode) error {
	if !result.Renamed() {
		if err := fileutil.WriteFileAtomic(result.Path, data, perm); err != nil {
			return faults.Wrap(nil, "playlist", "write", result.Path, err)
		}
		return nil
	}

	taken, err := destinationTaken(result.Path, result.Target)
	if err != nil {
		return faults.Wrap(nil, "playlist", "stat", result.Target, err)
	}
	if taken {
		return faults.Wrap(faults.ErrConflict, "playlist", "rename",
			fmt.Sprintf("%s already exists", result.Target), nil)
	}

	if same, _ := sameFile(result.Path, result.Target); same {
		// Case-only rename: rewrite in place, then move.
		if err := fileutil.WriteFileAtomic(result.Path, data, perm); err != nil {
			return faults.Wrap(nil, "playlist", "write", result.Path, err)
		}
		if err := fileutil.Rename(result.Path, result.Target); err != nil {
			return faults.Wrap(nil, "playlist", "rename", result.Path, err)
		}
		return nil
	}

	if err := fileutil.CreateFileAtomic(result.Target, data, perm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return faults.Wrap(faults.ErrConflict, "playlist", "rename",
				fmt.Sprintf("%s already exists", result.Target), err)
		}
		return faults.Wrap(nil, "playlist", "write", result.Target, err)
	}
	if err := os.Remove(result.Path); err != nil {
		return faults.Wrap(nil, "playlist", "remove", result.Path, err)
	}
	s.logger.Debug("removed original playlist", logging.String("path", result.Path))
	return nil
}

// destinationTaken reports whether dst exists as a different filesystem
// object than src.
func destinationTaken(src, dst string) (bool, error) {
	exists, err := fileutil.Exists(dst)
	if err != nil || !exists {
		return false, err
	}
	same, err := sameFile(src, dst)
	if err != nil {
		return false, err
	}
	return !same, nil
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Lstat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

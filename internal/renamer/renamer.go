package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filerename/internal/faults"
	"filerename/internal/fileutil"
	"filerename/internal/logging"
	"filerename/internal/media"
	"filerename/internal/naming"
	"filerename/internal/playlist"
	"filerename/internal/tagging"
)

// Options configures a Renamer for one run.
type Options struct {
	Rules             naming.RuleSet
	Classifier        media.Classifier
	DryRun            bool
	GeneratePlaylists bool
	EditTags          bool
	Tagging           tagging.Options
}

// Renamer applies a rule set to files and directory trees.
type Renamer struct {
	opts    Options
	sync    *playlist.Synchronizer
	gen     *playlist.Generator
	tags    *tagging.Editor
	logger  *slog.Logger
	changes []Change
	// planned maps dry-run destinations to their sources to surface
	// collisions that only appear once both renames happen.
	planned   map[string]string
	generated int
	retagged  int
}

// New constructs a Renamer.
func New(opts Options, logger *slog.Logger) *Renamer {
	tagOpts := opts.Tagging
	tagOpts.DryRun = opts.DryRun
	return &Renamer{
		opts:    opts,
		sync:    playlist.NewSynchronizer(opts.Rules, opts.Classifier, opts.DryRun, logger),
		gen:     playlist.NewGenerator(opts.Rules, opts.Classifier, opts.DryRun, logger),
		tags:    tagging.NewEditor(tagOpts, logger),
		logger:  logging.NewComponentLogger(logger, "walker"),
		planned: make(map[string]string),
	}
}

// WithCommandRunner replaces the external tag writer runner (used in tests).
func (r *Renamer) WithCommandRunner(run tagging.CommandRunner) {
	if r != nil {
		r.tags.WithCommandRunner(run)
	}
}

// Changes returns the changes recorded so far, in the order they happened.
func (r *Renamer) Changes() []Change {
	return append([]Change(nil), r.changes...)
}

// Generated returns the number of playlists written to disk.
func (r *Renamer) Generated() int {
	return r.generated
}

// Retagged returns the number of media files whose tags were rewritten.
func (r *Renamer) Retagged() int {
	return r.retagged
}

// Walk renames the directory tree rooted at path and returns its final
// location. When renameSelf is false the root keeps its name. After the tree
// is processed the playlist generator and tag editor run over every
// directory, if enabled.
func (r *Renamer) Walk(ctx context.Context, path string, renameSelf bool) (string, error) {
	final, err := r.walk(ctx, path, renameSelf)
	if err != nil {
		return "", err
	}
	if r.opts.GeneratePlaylists {
		if err := r.generatePlaylists(final); err != nil {
			return "", err
		}
	}
	if r.opts.EditTags {
		if err := r.retagTree(ctx, final); err != nil {
			return "", err
		}
	}
	return final, nil
}

func (r *Renamer) walk(ctx context.Context, path string, renameSelf bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return "", faults.Wrap(faults.ErrNotFound, "walker", "walk",
				fmt.Sprintf("directory %s does not exist", path), err)
		}
		return "", faults.Wrap(nil, "walker", "stat", path, err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", faults.Wrap(nil, "walker", "read dir", path, err)
	}
	var dirs, files []string
	kinds := make(map[string]media.Kind)
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
			continue
		}
		kind := r.opts.Classifier.Classify(entry.Name())
		if kind == media.KindUnsupported {
			return "", unsupported(filepath.Join(path, entry.Name()))
		}
		kinds[entry.Name()] = kind
		files = append(files, entry.Name())
	}

	target := path
	if renameSelf {
		if target, err = r.renameDir(path); err != nil {
			return "", err
		}
	}
	// Dry-run leaves the directory in place, so traversal continues from the
	// original path.
	if r.opts.DryRun {
		target = path
	}

	for _, name := range dirs {
		if _, err := r.walk(ctx, filepath.Join(target, name), true); err != nil {
			return "", err
		}
	}
	for _, name := range files {
		if _, err := r.dispatch(filepath.Join(target, name), kinds[name]); err != nil {
			return "", err
		}
	}
	return target, nil
}

func (r *Renamer) renameDir(path string) (string, error) {
	base := filepath.Base(path)
	renamed := r.opts.Rules.Transform(base)
	if renamed == base {
		return path, nil
	}
	if renamed == "" {
		return "", faults.Wrap(faults.ErrConflict, "walker", "rename dir",
			fmt.Sprintf("%s would be renamed to an empty name", path), nil)
	}
	dest := filepath.Join(filepath.Dir(path), renamed)
	if err := r.move(ChangeDir, path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// RenameFile renames one media file by transforming its stem and returns its
// final location.
func (r *Renamer) RenameFile(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return "", faults.Wrap(faults.ErrNotFound, "walker", "rename file",
				fmt.Sprintf("file %s does not exist", path), err)
		}
		return "", faults.Wrap(nil, "walker", "stat", path, err)
	}

	base := filepath.Base(path)
	renamed := r.opts.Rules.TransformStem(base)
	if renamed == base {
		return path, nil
	}
	if stem, _ := naming.SplitStem(base); r.opts.Rules.Transform(stem) == "" {
		return "", faults.Wrap(faults.ErrConflict, "walker", "rename file",
			fmt.Sprintf("%s would be renamed to an empty name", path), nil)
	}
	dest := filepath.Join(filepath.Dir(path), renamed)
	if err := r.move(ChangeFile, path, dest); err != nil {
		return "", err
	}
	if r.opts.DryRun {
		return path, nil
	}
	return dest, nil
}

// move renames src to dest in apply mode and records the change in both
// modes.
func (r *Renamer) move(kind ChangeKind, src, dest string) error {
	r.logger.Info("transform",
		logging.String(logging.FieldEventType, string(kind)+"_rename"),
		logging.String("kind", string(kind)),
		logging.String("from", src),
		logging.String("to", dest),
		logging.Bool("dry_run", r.opts.DryRun),
	)

	if r.opts.DryRun {
		if taken, _ := destinationTaken(src, dest); taken {
			r.logger.Warn("destination already exists",
				logging.String(logging.FieldEventType, "rename_conflict"),
				logging.String("from", src),
				logging.String("to", dest),
			)
		} else if other, ok := r.planned[dest]; ok && other != src {
			r.logger.Warn("destination already claimed by another rename",
				logging.String(logging.FieldEventType, "rename_conflict"),
				logging.String("from", src),
				logging.String("other", other),
				logging.String("to", dest),
			)
		}
		r.planned[dest] = src
		r.record(Change{Kind: kind, From: src, To: dest})
		return nil
	}

	if err := fileutil.Rename(src, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return faults.Wrap(faults.ErrConflict, "walker", "rename "+string(kind),
				fmt.Sprintf("cannot rename %s: %s already exists", src, dest), err)
		}
		return faults.Wrap(nil, "walker", "rename "+string(kind), src, err)
	}
	r.record(Change{Kind: kind, From: src, To: dest, Applied: true})
	return nil
}

// ProcessFile handles a single file target without recursion and returns its
// final location. Media files are retagged when tag editing is enabled.
func (r *Renamer) ProcessFile(ctx context.Context, path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return "", faults.Wrap(faults.ErrNotFound, "walker", "process file",
				fmt.Sprintf("%s is not a valid directory or file", path), err)
		}
		return "", faults.Wrap(nil, "walker", "stat", path, err)
	}
	kind := r.opts.Classifier.Classify(path)
	if kind == media.KindUnsupported {
		return "", unsupported(path)
	}
	final, err := r.dispatch(path, kind)
	if err != nil {
		return "", err
	}
	if r.opts.EditTags && kind.Renamable() {
		if err := r.retag(ctx, final); err != nil {
			return "", err
		}
	}
	return final, nil
}

func (r *Renamer) dispatch(path string, kind media.Kind) (string, error) {
	switch kind {
	case media.KindAudio, media.KindVideo:
		return r.RenameFile(path)
	case media.KindPlaylist:
		return r.syncPlaylist(path)
	case media.KindIgnored:
		r.logger.Debug("skipping ignored file", logging.String("path", path))
		return path, nil
	default:
		return "", unsupported(path)
	}
}

func (r *Renamer) syncPlaylist(path string) (string, error) {
	result, err := r.sync.Rewrite(path)
	if err != nil {
		return "", err
	}
	for _, line := range result.Lines {
		r.record(Change{Kind: ChangeEntry, From: line.From, To: line.To, Detail: result.Target, Applied: result.Applied})
	}
	if result.Renamed() {
		r.record(Change{Kind: ChangePlaylist, From: result.Path, To: result.Target, Applied: result.Applied})
	}
	if result.Applied {
		return result.Target, nil
	}
	return result.Path, nil
}

func (r *Renamer) record(change Change) {
	r.changes = append(r.changes, change)
}

func unsupported(path string) error {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = "(none)"
	}
	return faults.Wrap(faults.ErrUnsupportedFile, "walker", "classify",
		fmt.Sprintf("invalid file %s found with extension %s", path, ext), nil)
}

func destinationTaken(src, dst string) (bool, error) {
	dstInfo, err := os.Lstat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return true, nil
	}
	return !os.SameFile(srcInfo, dstInfo), nil
}

// Preflight classifies every file below root and fails with the full list of
// unsupported files before anything is renamed.
func (r *Renamer) Preflight(root string) error {
	var offending []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if r.opts.Classifier.Classify(path) == media.KindUnsupported {
			offending = append(offending, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return faults.Wrap(faults.ErrNotFound, "walker", "preflight", root, err)
		}
		return faults.Wrap(nil, "walker", "preflight", root, err)
	}
	if len(offending) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrUnsupportedFile, "walker", "preflight",
		fmt.Sprintf("%d unsupported file(s): %s", len(offending), strings.Join(offending, ", ")), nil)
}

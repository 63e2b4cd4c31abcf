package tagging

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
)

// Writer names accepted by Options.
const (
	WriterFFmpeg = "ffmpeg"
	WriterID3v2  = "id3v2"
)

const tempPrefix = ".retag-"

// Options configures an Editor.
type Options struct {
	Writer       string
	FFmpegBinary string
	DryRun       bool
}

// Result reports the outcome of one Retag call.
type Result struct {
	Path     string
	Metadata Metadata
	// Writer is the writer chosen for the file.
	Writer string
	// Command is the invocation used, or that would be used in dry-run mode.
	Command []string
	// Unchanged is true when the file already carried the derived tags.
	Unchanged bool
	// Written is true when the file was replaced.
	Written bool
}

// Editor rewrites title and album tags to match file names.
type Editor struct {
	opts   Options
	ffmpeg *ffmpegWriter
	read   tagReader
	logger *slog.Logger
}

// NewEditor constructs a tag editor.
func NewEditor(opts Options, logger *slog.Logger) *Editor {
	binary := strings.TrimSpace(opts.FFmpegBinary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Editor{
		opts:   opts,
		ffmpeg: &ffmpegWriter{binary: binary, run: defaultCommandRunner},
		read:   readTags,
		logger: logging.NewComponentLogger(logger, "tagger"),
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Editor) WithCommandRunner(r CommandRunner) {
	if e != nil && r != nil {
		e.ffmpeg.run = r
	}
}

// TempPath returns the hidden sibling a writer produces for path.
func TempPath(path string) string {
	return filepath.Join(filepath.Dir(path), tempPrefix+filepath.Base(path))
}

func (e *Editor) writerFor(path string) writer {
	if strings.EqualFold(e.opts.Writer, WriterID3v2) && strings.EqualFold(filepath.Ext(path), ".mp3") {
		return id3Writer{}
	}
	return e.ffmpeg
}

// Retag derives metadata from the file name at path and writes it into the
// file unless it already matches.
func (e *Editor) Retag(ctx context.Context, path string) (Result, error) {
	return e.RetagAs(ctx, path, filepath.Base(path))
}

// RetagAs behaves like Retag but derives the metadata from name. Dry runs use
// it to plan tags for the name a file will have once renamed.
func (e *Editor) RetagAs(ctx context.Context, path, name string) (Result, error) {
	if e == nil {
		return Result{}, fmt.Errorf("tag editor not initialized")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, faults.Wrap(faults.ErrNotFound, "tagger", "retag", path, err)
		}
		return Result{}, faults.Wrap(nil, "tagger", "stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return Result{}, faults.Wrap(faults.ErrNotFound, "tagger", "retag", path+" is not a regular file", nil)
	}

	md := Derive(name)
	w := e.writerFor(path)
	tmp := TempPath(path)
	result := Result{
		Path:     path,
		Metadata: md,
		Writer:   w.name(),
		Command:  w.describe(path, tmp, md),
	}

	if e.opts.DryRun {
		e.logger.Info("would retag",
			logging.String(logging.FieldEventType, "retag_planned"),
			logging.String("path", path),
			logging.String("title", md.Title),
			logging.String("album", md.Album),
			logging.String("command", strings.Join(result.Command, " ")),
		)
		return result, nil
	}

	current, ok, err := e.read(path)
	if err != nil {
		e.logger.Debug("existing tags unreadable", logging.String("path", path), logging.Error(err))
	}
	if ok && current == md {
		result.Unchanged = true
		e.logger.Debug("tags already current", logging.String("path", path))
		return result, nil
	}

	if exists, err := fileutil.Exists(tmp); err != nil {
		return Result{}, faults.Wrap(nil, "tagger", "stat", tmp, err)
	} else if exists {
		return Result{}, faults.Wrap(faults.ErrConflict, "tagger", "retag",
			fmt.Sprintf("temporary file %s already exists", tmp), nil)
	}

	e.logger.Debug("executing tag writer",
		logging.String("writer", w.name()),
		logging.String("path", path),
		logging.String("command", strings.Join(result.Command, " ")),
	)
	if err := w.write(ctx, path, tmp, md); err != nil {
		_ = os.Remove(tmp)
		return Result{}, faults.Wrap(faults.ErrTagWrite, "tagger", w.name(), path, err)
	}

	out, err := os.Stat(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return Result{}, faults.Wrap(faults.ErrTagWrite, "tagger", w.name(), "writer produced no output for "+path, err)
	}
	if out.Size() == 0 {
		_ = os.Remove(tmp)
		return Result{}, faults.Wrap(faults.ErrTagWrite, "tagger", w.name(), "writer produced an empty file for "+path, nil)
	}
	if err := os.Chmod(tmp, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmp)
		return Result{}, faults.Wrap(nil, "tagger", "chmod", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Result{}, faults.Wrap(nil, "tagger", "replace", path, err)
	}

	result.Written = true
	e.logger.Info("retagged",
		logging.String(logging.FieldEventType, "retag_complete"),
		logging.String("path", path),
		logging.String("title", md.Title),
		logging.String("album", md.Album),
		logging.String("writer", w.name()),
	)
	return result, nil
}

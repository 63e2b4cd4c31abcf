package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"filerename/internal/census"
	"filerename/internal/config"
	"filerename/internal/faults"
	"filerename/internal/logging"
	"filerename/internal/renamer"
	"filerename/internal/tagging"
)

// Request describes one invocation.
type Request struct {
	Target            string
	DryRun            bool
	GeneratePlaylists bool
	EditTags          bool
}

// Runner executes rename requests against a configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	tagRun tagging.CommandRunner
	newID  func() string
	now    func() time.Time
}

// NewRunner constructs a runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// WithCommandRunner allows injecting the tag writer command runner for tests.
func (r *Runner) WithCommandRunner(run tagging.CommandRunner) {
	if r != nil && run != nil {
		r.tagRun = run
	}
}

// Run executes req. The returned Summary is populated as far as the run got,
// even when an error is returned.
func (r *Runner) Run(ctx context.Context, req Request) (Summary, error) {
	if r == nil || r.cfg == nil {
		return Summary{}, faults.Wrap(faults.ErrConfiguration, "workflow", "run", "runner not configured", nil)
	}
	if strings.TrimSpace(req.Target) == "" {
		return Summary{}, faults.Wrap(faults.ErrUsage, "workflow", "run", "target path is required", nil)
	}

	summary := Summary{
		RunID:   r.newID(),
		DryRun:  req.DryRun,
		Target:  req.Target,
		Started: r.now(),
	}
	err := r.execute(ctx, req, &summary)
	summary.Duration = r.now().Sub(summary.Started)
	return summary, err
}

func (r *Runner) execute(ctx context.Context, req Request, summary *Summary) error {
	logger := logging.WithRun(logging.NewComponentLogger(r.logger, "workflow"), summary.RunID, req.DryRun)

	target, err := filepath.Abs(req.Target)
	if err != nil {
		return faults.Wrap(nil, "workflow", "resolve target", req.Target, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return faults.Wrap(faults.ErrNotFound, "workflow", "resolve target",
				fmt.Sprintf("%s is not a valid directory or file", req.Target), err)
		}
		return faults.Wrap(nil, "workflow", "stat", target, err)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return faults.Wrap(faults.ErrNotFound, "workflow", "resolve target",
			fmt.Sprintf("%s is not a valid directory or file", req.Target), nil)
	}
	summary.Target = target
	summary.InitialRoot = target
	summary.IsDir = info.IsDir()

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("target", target),
		logging.Bool("directory", summary.IsDir),
		logging.Bool("make_m3u", req.GeneratePlaylists),
		logging.Bool("edit_meta_tags", req.EditTags),
	)

	if !req.DryRun {
		lock, err := acquireLock(r.cfg.Paths.StateDir, target)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release lock", logging.Error(err))
			}
		}()
	}

	rn := renamer.New(renamer.Options{
		Rules:             r.cfg.RuleSet(),
		Classifier:        r.cfg.Classifier(),
		DryRun:            req.DryRun,
		GeneratePlaylists: req.GeneratePlaylists,
		EditTags:          req.EditTags,
		Tagging: tagging.Options{
			Writer:       r.cfg.Tagging.Writer,
			FFmpegBinary: r.cfg.FFmpegBinary(),
		},
	}, logger)
	if r.tagRun != nil {
		rn.WithCommandRunner(r.tagRun)
	}
	collect := func() {
		summary.Changes = rn.Changes()
		summary.Generated = rn.Generated()
		summary.Retagged = rn.Retagged()
	}

	if !summary.IsDir {
		final, err := rn.ProcessFile(ctx, target)
		collect()
		if err != nil {
			return err
		}
		summary.FinalRoot = final
		r.logComplete(logger, summary)
		return nil
	}

	before, err := census.Take(target)
	if err != nil {
		return err
	}
	summary.Before = before
	logger.Info("census before",
		logging.Int("directories", before.Directories),
		logging.Int("files", before.Files()),
	)

	if err := rn.Preflight(target); err != nil {
		return err
	}

	final, err := rn.Walk(ctx, target, true)
	collect()
	if err != nil {
		return err
	}
	summary.FinalRoot = final

	after, err := census.Take(final)
	if err != nil {
		return err
	}
	summary.After = after

	expected := before.Credit(r.cfg.Classifier().PlaylistExt(), summary.Generated)
	if err := census.Compare(expected, after); err != nil {
		logger.Error("integrity check failed",
			logging.String(logging.FieldEventType, "integrity_failed"),
			logging.Error(err),
		)
		return err
	}

	r.logComplete(logger, summary)
	return nil
}

func (r *Runner) logComplete(logger *slog.Logger, summary *Summary) {
	logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("final", summary.FinalRoot),
		logging.Int("changes", len(summary.Changes)),
		logging.Int("generated", summary.Generated),
		logging.Int("retagged", summary.Retagged),
	)
}

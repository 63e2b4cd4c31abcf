package renamer

import (
	"context"
	"io/fs"
	"path/filepath"

	"filerename/internal/faults"
	"filerename/internal/logging"
	"filerename/internal/tagging"
)

// directories returns root and every directory below it in lexical order.
func directories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func (r *Renamer) generatePlaylists(root string) error {
	dirs, err := directories(root)
	if err != nil {
		return faults.Wrap(nil, "walker", "list directories", root, err)
	}
	r.logger.Debug("playlist pass", logging.Int("directories", len(dirs)))
	for _, dir := range dirs {
		result, err := r.gen.Generate(dir)
		if err != nil {
			return err
		}
		if result.Skipped != "" {
			continue
		}
		if result.Created {
			r.generated++
		}
		r.record(Change{Kind: ChangeGenerated, To: result.Path, Detail: dir, Applied: result.Created})
	}
	return nil
}

func (r *Renamer) retagTree(ctx context.Context, root string) error {
	var targets []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && r.opts.Classifier.Classify(path).Renamable() {
			targets = append(targets, path)
		}
		return nil
	})
	if err != nil {
		return faults.Wrap(nil, "walker", "list media", root, err)
	}
	r.logger.Debug("tag pass", logging.Int("files", len(targets)))
	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.retag(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renamer) retag(ctx context.Context, path string) error {
	name := filepath.Base(path)
	if r.opts.DryRun {
		name = r.opts.Rules.TransformStem(name)
	}
	result, err := r.tags.RetagAs(ctx, path, name)
	if err != nil {
		return err
	}
	if result.Unchanged {
		return nil
	}
	if result.Written {
		r.retagged++
	}
	r.record(Change{
		Kind:    ChangeRetag,
		From:    path,
		To:      describeMetadata(result.Metadata),
		Detail:  result.Writer,
		Applied: result.Written,
	})
	return nil
}

func describeMetadata(md tagging.Metadata) string {
	if md.Album == "" {
		return "title=" + md.Title
	}
	return "album=" + md.Album + " title=" + md.Title
}

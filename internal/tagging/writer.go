package tagging

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bogem/id3v2/v2"

	"filerename/internal/fileutil"
)

// CommandRunner executes an external program.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// writer produces dst, a copy of src carrying md.
type writer interface {
	name() string
	write(ctx context.Context, src, dst string, md Metadata) error
	describe(src, dst string, md Metadata) []string
}

type ffmpegWriter struct {
	binary string
	run    CommandRunner
}

func (w *ffmpegWriter) name() string { return "ffmpeg" }

func (w *ffmpegWriter) write(ctx context.Context, src, dst string, md Metadata) error {
	args := ffmpegArgs(src, dst, md)
	if err := w.run(ctx, w.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

func (w *ffmpegWriter) describe(src, dst string, md Metadata) []string {
	return append([]string{w.binary}, ffmpegArgs(src, dst, md)...)
}

func ffmpegArgs(src, dst string, md Metadata) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", src,
		"-map", "0",
		"-c", "copy",
		"-metadata", "title=" + md.Title,
		"-metadata", "album=" + md.Album,
		dst,
	}
}

type id3Writer struct{}

func (id3Writer) name() string { return "id3v2" }

func (id3Writer) write(_ context.Context, src, dst string, md Metadata) error {
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy for tagging: %w", err)
	}
	tag, err := id3v2.Open(dst, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(md.Title)
	if md.Album == "" {
		tag.DeleteFrames(tag.CommonID("Album/Movie/Show title"))
	} else {
		tag.SetAlbum(md.Album)
	}
	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}

func (id3Writer) describe(src, dst string, md Metadata) []string {
	return []string{"id3v2", "title=" + md.Title, "album=" + md.Album, src, dst}
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

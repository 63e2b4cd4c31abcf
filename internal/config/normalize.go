package config

import (
	"fmt"
	"strings"

	"filerename/internal/media"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtensions()
	c.normalizeTagging()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtensions() {
	c.Extensions.Audio = normalizeExtList(c.Extensions.Audio)
	c.Extensions.Video = normalizeExtList(c.Extensions.Video)
	c.Extensions.Ignore = normalizeExtList(c.Extensions.Ignore)
	c.Extensions.Playlist = media.NormalizeExt(c.Extensions.Playlist)
	if c.Extensions.Playlist == "" {
		c.Extensions.Playlist = defaultPlaylistExt
	}
}

func (c *Config) normalizeTagging() {
	c.Tagging.Writer = strings.ToLower(strings.TrimSpace(c.Tagging.Writer))
	if c.Tagging.Writer == "" {
		c.Tagging.Writer = defaultTagWriter
	}
	c.Tagging.FFmpegBinary = strings.TrimSpace(c.Tagging.FFmpegBinary)
	if c.Tagging.FFmpegBinary == "" {
		c.Tagging.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}

func normalizeExtList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := media.NormalizeExt(value)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

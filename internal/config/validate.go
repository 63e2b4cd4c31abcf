package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateExtensions(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRules() error {
	for i, token := range c.Rules.Remove {
		if token == "" {
			return fmt.Errorf("rules.remove[%d] must not be empty", i)
		}
	}
	seen := make(map[string]struct{}, len(c.Rules.Replace))
	for i, rep := range c.Rules.Replace {
		if rep.From == "" {
			return fmt.Errorf("rules.replace[%d].from must not be empty", i)
		}
		if _, dup := seen[rep.From]; dup {
			return fmt.Errorf("rules.replace[%d]: duplicate key %q", i, rep.From)
		}
		seen[rep.From] = struct{}{}
		// A value containing its own key grows on every run.
		if strings.Contains(rep.To, rep.From) {
			return fmt.Errorf("rules.replace[%d]: replacement %q reintroduces %q", i, rep.To, rep.From)
		}
	}
	return nil
}

func (c *Config) validateExtensions() error {
	if c.Extensions.Playlist == "" {
		return errors.New("extensions.playlist must be set")
	}
	owner := map[string]string{c.Extensions.Playlist: "playlist"}
	sets := []struct {
		name   string
		values []string
	}{
		{"audio", c.Extensions.Audio},
		{"video", c.Extensions.Video},
		{"ignore", c.Extensions.Ignore},
	}
	for _, set := range sets {
		for _, ext := range set.values {
			if prev, ok := owner[ext]; ok {
				return fmt.Errorf("extensions.%s: %q is already listed under %s", set.name, ext, prev)
			}
			owner[ext] = set.name
		}
	}
	return nil
}

func (c *Config) validateTagging() error {
	if !slices.Contains([]string{TagWriterFFmpeg, TagWriterID3v2}, c.Tagging.Writer) {
		return fmt.Errorf("tagging.writer: unsupported value %q (want %q or %q)", c.Tagging.Writer, TagWriterFFmpeg, TagWriterID3v2)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

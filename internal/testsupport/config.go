package testsupport

import (
	"path/filepath"
	"testing"

	"filerename/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config whose state directory lives in a unique
// temp directory, outside any tree under test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""

	for _, opt := range opts {
		opt(&cfgVal)
	}
	return &cfgVal
}

// WithRules replaces the rename rules on the test config.
func WithRules(remove []string, replace []config.Replacement) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Rules.Remove = remove
		cfg.Rules.Replace = replace
	}
}

// WithIgnore sets the ignored extensions on the test config.
func WithIgnore(exts ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Extensions.Ignore = exts
	}
}

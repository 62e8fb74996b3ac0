package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bdmenu/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithEncoder sets the feature encoder on the test config.
func WithEncoder(encoder string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.Encoder = encoder
	}
}

// WithMenuDuration overrides the menu loop duration in seconds.
func WithMenuDuration(seconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.MenuDurationSeconds = seconds
	}
}

// WithStubbedTools writes stub ffmpeg and tsMuxeR executables that exit with
// status 0 and points the tool overrides at them.
func WithStubbedTools() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		b.cfg.Tools.FFmpeg = WriteStub(b.t, binDir, "ffmpeg", "exit 0")
		b.cfg.Tools.TsMuxer = WriteStub(b.t, binDir, "tsMuxeR", "exit 0")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// WriteStub writes an executable shell script named name into dir whose body
// is the given shell text, and returns its path.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bdmenu/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "bdmenu", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	wantState := filepath.Join(tempHome, ".local", "state", "bdmenu")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "runs.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
	if cfg.Encoding.Encoder != "libx264" {
		t.Fatalf("expected libx264 default encoder, got %q", cfg.Encoding.Encoder)
	}
	if cfg.Encoding.MenuDurationSeconds != 10 {
		t.Fatalf("expected 10s menu duration, got %v", cfg.Encoding.MenuDurationSeconds)
	}
	if cfg.Authoring.ISOName != "BDMV_MENU.iso" || cfg.Authoring.MetaName != "tsmuxer.meta" || cfg.Authoring.MenuImageName != "menu_image.png" {
		t.Fatalf("unexpected authoring names: %+v", cfg.Authoring)
	}
	if cfg.Layout.TitleText != "My Blu-ray Title" || cfg.Layout.Title.FontFamily != "Impact" || cfg.Layout.Title.FontSize != 72 {
		t.Fatalf("unexpected title defaults: %+v", cfg.Layout)
	}
	if cfg.Layout.Button.FontColor != "#ffffff" || cfg.Layout.ButtonSpacing != 70 {
		t.Fatalf("unexpected button defaults: %+v", cfg.Layout)
	}
	if cfg.Workers.MaxConcurrentJobs != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.Workers.MaxConcurrentJobs)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bdmenu.toml")

	type payload struct {
		Encoding struct {
			Encoder string `toml:"encoder"`
			Profile string `toml:"profile"`
		} `toml:"encoding"`
		Burning struct {
			Drive string `toml:"drive"`
		} `toml:"burning"`
		Workers struct {
			MaxConcurrentJobs int `toml:"max_concurrent_jobs"`
		} `toml:"workers"`
	}
	custom := payload{}
	custom.Encoding.Encoder = " H264_NVENC "
	custom.Encoding.Profile = "1280x720:30"
	custom.Burning.Drive = " E: "
	custom.Workers.MaxConcurrentJobs = 4
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Encoding.Encoder != "h264_nvenc" {
		t.Fatalf("expected normalized encoder, got %q", cfg.Encoding.Encoder)
	}
	if cfg.Encoding.Profile != "1280x720:30" {
		t.Fatalf("unexpected profile %q", cfg.Encoding.Profile)
	}
	if cfg.Burning.Drive != "E:" {
		t.Fatalf("expected trimmed drive, got %q", cfg.Burning.Drive)
	}
	if cfg.Workers.MaxConcurrentJobs != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Workers.MaxConcurrentJobs)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"encoder", func(c *config.Config) { c.Encoding.Encoder = "libx265" }, "encoding.encoder"},
		{"profile", func(c *config.Config) { c.Encoding.Profile = "fullhd" }, "encoding.profile"},
		{"duration", func(c *config.Config) { c.Encoding.MenuDurationSeconds = -1 }, "encoding.menu_duration_seconds"},
		{"iso name", func(c *config.Config) { c.Authoring.ISOName = "out/disc.iso" }, "authoring.iso_name"},
		{"iso over feature", func(c *config.Config) { c.Authoring.ISOName = "encoded_video.m2ts" }, "authoring.iso_name"},
		{"meta over iso", func(c *config.Config) { c.Authoring.MetaName = c.Authoring.ISOName }, "authoring.meta_name"},
		{"image over menu", func(c *config.Config) { c.Authoring.MenuImageName = "MENU.m2ts" }, "authoring.menu_image_name"},
		{"profile without size", func(c *config.Config) { c.Encoding.Profile = ":60" }, "encoding.profile"},
		{"profile without fps", func(c *config.Config) { c.Encoding.Profile = "1920x1080:" }, "encoding.profile"},
		{"title colour", func(c *config.Config) { c.Layout.Title.FontColor = "yellow" }, "layout.title.font_color"},
		{"button size", func(c *config.Config) { c.Layout.Button.FontSize = -5 }, "layout.button.font_size"},
		{"ntfy topic", func(c *config.Config) { c.Notifications.NtfyTopic = "ntfy.sh/topic" }, "notifications.ntfy_topic"},
		{"workers", func(c *config.Config) { c.Workers.MaxConcurrentJobs = 1 }, "workers.max_concurrent_jobs"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error naming %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bdmenu.toml")
	if err := os.WriteFile(path, []byte("[encoding\nencoder="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, want := range []string{"[encoding]", "menu_duration_seconds", "[layout.button]"} {
		if !strings.Contains(string(contents), want) {
			t.Fatalf("sample missing %q", want)
		}
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Layout.Title.FontColor != "#ffff00" {
		t.Fatalf("unexpected sample title colour %q", cfg.Layout.Title.FontColor)
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/videos")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "videos") {
		t.Fatalf("unexpected expansion %q", got)
	}
}

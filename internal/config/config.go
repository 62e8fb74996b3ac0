package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Tools contains explicit executable overrides. Empty values fall back to the
// locator search (next to the bdmenu executable, then PATH).
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	TsMuxer string `toml:"tsmuxer"`
}

// Encoding contains configuration for the menu and feature encode jobs.
type Encoding struct {
	Encoder             string  `toml:"encoder"`
	Profile             string  `toml:"profile"`
	MenuDurationSeconds float64 `toml:"menu_duration_seconds"`
}

// Authoring contains the fixed output names written next to the source video.
type Authoring struct {
	ISOName       string `toml:"iso_name"`
	MetaName      string `toml:"meta_name"`
	MenuImageName string `toml:"menu_image_name"`
}

// Burning contains disc burning defaults.
type Burning struct {
	Drive string `toml:"drive"`
}

// TextDefaults describes the font properties assigned to new canvas items.
type TextDefaults struct {
	FontFamily string `toml:"font_family"`
	FontSize   int    `toml:"font_size"`
	FontColor  string `toml:"font_color"`
}

// Layout contains defaults for the title and generated chapter buttons.
type Layout struct {
	TitleText     string       `toml:"title_text"`
	TitleX        int          `toml:"title_x"`
	TitleY        int          `toml:"title_y"`
	Title         TextDefaults `toml:"title"`
	Button        TextDefaults `toml:"button"`
	ButtonX       int          `toml:"button_x"`
	ButtonY       int          `toml:"button_y"`
	ButtonSpacing int          `toml:"button_spacing"`
	ButtonWidth   int          `toml:"button_width"`
	ButtonHeight  int          `toml:"button_height"`
}

// Notifications configures optional ntfy alerts for finished runs.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Workers bounds how many external processes may run at once.
type Workers struct {
	MaxConcurrentJobs int `toml:"max_concurrent_jobs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bdmenu.
//
// Configuration sections by subsystem:
//   - Paths: log and state directories
//   - Tools: ffmpeg and tsMuxeR overrides
//   - Encoding: encoder, output profile and menu loop duration
//   - Authoring: output file names
//   - Burning: default optical drive
//   - Layout: default title and button properties
//   - Notifications: ntfy alerts when a run finishes
//   - Workers: job concurrency
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Tools         Tools         `toml:"tools"`
	Encoding      Encoding      `toml:"encoding"`
	Authoring     Authoring     `toml:"authoring"`
	Burning       Burning       `toml:"burning"`
	Layout        Layout        `toml:"layout"`
	Notifications Notifications `toml:"notifications"`
	Workers       Workers       `toml:"workers"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bdmenu.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogPath returns the structured log file written by bdmenu commands.
func (c *Config) LogPath() string {
	if c.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "bdmenu.log")
}

// HistoryPath returns the location of the run history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "runs.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "bdmenu")
	}
	return defaultStateDirFallback
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

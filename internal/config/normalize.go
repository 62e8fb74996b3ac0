package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeAuthoring()
	c.normalizeLayout()
	c.Burning.Drive = strings.TrimSpace(c.Burning.Drive)
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds == 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeout
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	var err error
	if c.Tools.FFmpeg, err = expandPath(strings.TrimSpace(c.Tools.FFmpeg)); err != nil {
		return fmt.Errorf("tools.ffmpeg: %w", err)
	}
	if c.Tools.TsMuxer, err = expandPath(strings.TrimSpace(c.Tools.TsMuxer)); err != nil {
		return fmt.Errorf("tools.tsmuxer: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Encoder = strings.ToLower(strings.TrimSpace(c.Encoding.Encoder))
	if c.Encoding.Encoder == "" {
		c.Encoding.Encoder = defaultEncoder
	}
	c.Encoding.Profile = strings.TrimSpace(c.Encoding.Profile)
	if c.Encoding.MenuDurationSeconds == 0 {
		c.Encoding.MenuDurationSeconds = defaultMenuDuration
	}
}

func (c *Config) normalizeAuthoring() {
	c.Authoring.ISOName = defaultString(c.Authoring.ISOName, defaultISOName)
	c.Authoring.MetaName = defaultString(c.Authoring.MetaName, defaultMetaName)
	c.Authoring.MenuImageName = defaultString(c.Authoring.MenuImageName, defaultMenuImageName)
}

func (c *Config) normalizeLayout() {
	c.Layout.Title.FontFamily = defaultString(c.Layout.Title.FontFamily, defaultTitleFont)
	c.Layout.Title.FontColor = strings.ToLower(defaultString(c.Layout.Title.FontColor, defaultTitleColor))
	if c.Layout.Title.FontSize == 0 {
		c.Layout.Title.FontSize = defaultTitleSize
	}
	c.Layout.Button.FontFamily = defaultString(c.Layout.Button.FontFamily, defaultButtonFont)
	c.Layout.Button.FontColor = strings.ToLower(defaultString(c.Layout.Button.FontColor, defaultButtonColor))
	if c.Layout.Button.FontSize == 0 {
		c.Layout.Button.FontSize = defaultButtonSize
	}
	if c.Layout.ButtonSpacing == 0 {
		c.Layout.ButtonSpacing = defaultButtonSpacing
	}
	if c.Layout.ButtonWidth == 0 {
		c.Layout.ButtonWidth = defaultButtonWidth
	}
	if c.Layout.ButtonHeight == 0 {
		c.Layout.ButtonHeight = defaultButtonHeight
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

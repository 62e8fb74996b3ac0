package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	profilePattern  = regexp.MustCompile(`^\d+x\d+:[0-9./]+$`)
)

// SupportedEncoders lists the video encoder identifiers accepted for the feature encode.
var SupportedEncoders = []string{"libx264", "h264_nvenc", "h264_amf", "h264_qsv"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateAuthoring(); err != nil {
		return err
	}
	if err := c.validateLayout(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if c.Workers.MaxConcurrentJobs < 2 {
		return errors.New("workers.max_concurrent_jobs must be at least 2 so menu and feature encodes run together")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	known := false
	for _, enc := range SupportedEncoders {
		if c.Encoding.Encoder == enc {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("encoding.encoder %q must be one of %s", c.Encoding.Encoder, strings.Join(SupportedEncoders, ", "))
	}
	if c.Encoding.Profile != "" && !profilePattern.MatchString(c.Encoding.Profile) {
		return fmt.Errorf("encoding.profile %q must look like 1920x1080:24000/1001", c.Encoding.Profile)
	}
	if c.Encoding.MenuDurationSeconds <= 0 {
		return errors.New("encoding.menu_duration_seconds must be positive")
	}
	return nil
}

// ReservedOutputNames are the encode outputs written next to the source
// video. Configured output names must not collide with them.
var ReservedOutputNames = []string{"menu.m2ts", "encoded_video.m2ts"}

func (c *Config) validateAuthoring() error {
	names := []struct{ key, value string }{
		{"authoring.iso_name", c.Authoring.ISOName},
		{"authoring.meta_name", c.Authoring.MetaName},
		{"authoring.menu_image_name", c.Authoring.MenuImageName},
	}
	taken := make(map[string]string, len(names)+len(ReservedOutputNames))
	for _, reserved := range ReservedOutputNames {
		taken[reserved] = "the " + reserved + " encode output"
	}
	for _, n := range names {
		if filepath.Base(n.value) != n.value {
			return fmt.Errorf("%s must be a plain file name, got %q", n.key, n.value)
		}
		folded := strings.ToLower(n.value)
		if owner, ok := taken[folded]; ok {
			return fmt.Errorf("%s %q collides with %s", n.key, n.value, owner)
		}
		taken[folded] = n.key
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if topic := c.Notifications.NtfyTopic; topic != "" &&
		!strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic %q must be an http(s) URL", topic)
	}
	if c.Notifications.RequestTimeoutSeconds < 0 {
		return errors.New("notifications.request_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLayout() error {
	if !hexColorPattern.MatchString(c.Layout.Title.FontColor) {
		return fmt.Errorf("layout.title.font_color %q must be a #rrggbb colour", c.Layout.Title.FontColor)
	}
	if !hexColorPattern.MatchString(c.Layout.Button.FontColor) {
		return fmt.Errorf("layout.button.font_color %q must be a #rrggbb colour", c.Layout.Button.FontColor)
	}
	if err := ensurePositiveMap(map[string]int{
		"layout.title.font_size":  c.Layout.Title.FontSize,
		"layout.button.font_size": c.Layout.Button.FontSize,
		"layout.button_width":     c.Layout.ButtonWidth,
		"layout.button_height":    c.Layout.ButtonHeight,
	}); err != nil {
		return err
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

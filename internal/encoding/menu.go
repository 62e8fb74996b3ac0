package encoding

import (
	"path"
	"strconv"
	"strings"

	"bdmenu/internal/jobs"
	"bdmenu/internal/services"
)

const (
	defaultMenuResolution = "1920x1080"
	defaultMenuFPS        = "23.976"
	// MenuVideoName is the menu encode output, written next to the still image.
	MenuVideoName = "menu.m2ts"
)

// MenuJob loops a still image for Duration seconds with a silent stereo
// AC-3 track.
type MenuJob struct {
	FFmpeg    string
	ImagePath string
	Duration  float64
	Profile   Profile
}

func (j MenuJob) Kind() jobs.Kind { return jobs.KindMenu }

// OutputPath returns where the menu video is written.
func (j MenuJob) OutputPath() string {
	return path.Join(path.Dir(slashPath(j.ImagePath)), MenuVideoName)
}

func (j MenuJob) Command() (jobs.Command, error) {
	if strings.TrimSpace(j.FFmpeg) == "" {
		return jobs.Command{}, services.Wrap(services.ErrToolMissing, "menu_video", "build command", "ffmpeg executable not found", nil)
	}
	if strings.TrimSpace(j.ImagePath) == "" {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "menu_video", "build command", "menu image path is empty", nil)
	}
	if j.Duration <= 0 {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "menu_video", "build command", "menu duration must be positive", nil)
	}
	res, fps := defaultMenuResolution, defaultMenuFPS
	if j.Profile.Resolution != "" {
		res = j.Profile.Resolution
	}
	if j.Profile.FPS != "" {
		fps = j.Profile.FPS
	}
	output := j.OutputPath()
	args := []string{
		"-loop", "1", "-i", slashPath(j.ImagePath),
		"-f", "lavfi", "-i", "anullsrc=channel_layout=stereo:sample_rate=48000",
		"-c:v", "libx264", "-preset", "medium", "-crf", "20",
		"-c:a", "ac3", "-b:a", "448k",
		"-t", formatSeconds(j.Duration),
		"-r", fps,
		"-vf", "scale=" + res + ",format=yuv420p",
		"-y", output,
	}
	return jobs.Command{Binary: j.FFmpeg, Args: args, Output: output}, nil
}

// formatSeconds always keeps a fractional part (10 -> "10.0").
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

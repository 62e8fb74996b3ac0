package encoding

import (
	"path"
	"strings"

	"bdmenu/internal/jobs"
	"bdmenu/internal/services"
)

// FeatureVideoName is the feature encode output, written next to the source.
const FeatureVideoName = "encoded_video.m2ts"

// FeatureJob transcodes the first video and audio stream of the source.
type FeatureJob struct {
	FFmpeg    string
	VideoPath string
	Encoder   Encoder
	Profile   Profile
}

func (j FeatureJob) Kind() jobs.Kind { return jobs.KindFeature }

// OutputPath returns where the encoded feature is written.
func (j FeatureJob) OutputPath() string {
	return path.Join(path.Dir(slashPath(j.VideoPath)), FeatureVideoName)
}

func (j FeatureJob) Command() (jobs.Command, error) {
	if strings.TrimSpace(j.FFmpeg) == "" {
		return jobs.Command{}, services.Wrap(services.ErrToolMissing, "feature_video", "build command", "ffmpeg executable not found", nil)
	}
	if strings.TrimSpace(j.VideoPath) == "" {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "feature_video", "build command", "source video path is empty", nil)
	}
	encoder, err := ParseEncoder(string(j.Encoder))
	if err != nil {
		return jobs.Command{}, err
	}

	output := j.OutputPath()
	args := []string{"-i", slashPath(j.VideoPath), "-map", "0:v:0", "-map", "0:a:0"}
	if j.Profile.Resolution != "" {
		w, h, err := j.Profile.dimensions()
		if err != nil {
			return jobs.Command{}, err
		}
		filter := "scale=" + w + "x" + h + ":force_original_aspect_ratio=decrease,pad=" + w + ":" + h + ":(ow-iw)/2:(oh-ih)/2"
		args = append(args, "-vf", filter)
	}
	if j.Profile.FPS != "" {
		args = append(args, "-r", j.Profile.FPS)
	}
	args = append(args,
		"-c:v", string(encoder), "-preset", "medium",
		encoder.QualityFlag(), "20",
		"-pix_fmt", "yuv420p",
		"-c:a", "ac3", "-b:a", "448k",
		"-ar", "48000",
		"-y", output,
	)
	return jobs.Command{Binary: j.FFmpeg, Args: args, Output: output}, nil
}

package encoding

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"bdmenu/internal/services"
)

// Encoder identifies the ffmpeg video encoder used for the feature.
type Encoder string

const (
	EncoderX264  Encoder = "libx264"
	EncoderNVENC Encoder = "h264_nvenc"
	EncoderAMF   Encoder = "h264_amf"
	EncoderQSV   Encoder = "h264_qsv"
)

var knownEncoders = []Encoder{EncoderX264, EncoderNVENC, EncoderAMF, EncoderQSV}

// ParseEncoder accepts the supported encoder identifiers.
func ParseEncoder(value string) (Encoder, error) {
	enc := Encoder(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains(knownEncoders, enc) {
		return "", services.Wrap(services.ErrValidation, "encoding", "parse encoder", fmt.Sprintf("unsupported encoder %q", value), nil)
	}
	return enc, nil
}

// Hardware reports whether enc is a GPU encoder.
func (e Encoder) Hardware() bool {
	return e == EncoderNVENC || e == EncoderAMF || e == EncoderQSV
}

// QualityFlag returns the constant-quality flag for the encoder: hardware
// encoders take -cq, the software encoder -crf.
func (e Encoder) QualityFlag() string {
	if e.Hardware() {
		return "-cq"
	}
	return "-crf"
}

// Profile is a target resolution and frame rate. The zero profile means
// "keep the source" for the feature and "use the default" for the menu.
type Profile struct {
	Resolution string
	FPS        string
}

// ProfileOption is a selectable output profile.
type ProfileOption struct {
	Label string
	Value string
}

// ProfileOptions lists the output profiles offered to users.
var ProfileOptions = []ProfileOption{
	{Label: "Keep source", Value: ""},
	{Label: "1080p 59.94fps", Value: "1920x1080:60"},
	{Label: "1080p 29.97fps", Value: "1920x1080:30"},
	{Label: "1080p 23.976fps", Value: "1920x1080:24000/1001"},
	{Label: "720p 59.94fps", Value: "1280x720:60"},
	{Label: "720p 29.97fps", Value: "1280x720:30"},
}

var fpsPattern = regexp.MustCompile(`^[0-9./]+$`)

// ParseProfile splits "WxH:fps". An empty string is the zero profile.
func ParseProfile(value string) (Profile, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Profile{}, nil
	}
	res, fps, ok := strings.Cut(value, ":")
	if !ok {
		return Profile{}, services.Wrap(services.ErrValidation, "encoding", "parse profile", fmt.Sprintf("profile %q must be WxH:fps", value), nil)
	}
	p := Profile{Resolution: strings.TrimSpace(res), FPS: strings.TrimSpace(fps)}
	if p.Resolution == "" || !fpsPattern.MatchString(p.FPS) {
		return Profile{}, services.Wrap(services.ErrValidation, "encoding", "parse profile", fmt.Sprintf("profile %q must be WxH:fps", value), nil)
	}
	if _, _, err := p.dimensions(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// IsZero reports whether neither resolution nor frame rate is set.
func (p Profile) IsZero() bool {
	return p.Resolution == "" && p.FPS == ""
}

// String renders the profile in its parseable form.
func (p Profile) String() string {
	if p.IsZero() {
		return ""
	}
	return p.Resolution + ":" + p.FPS
}

func (p Profile) dimensions() (string, string, error) {
	w, h, ok := strings.Cut(p.Resolution, "x")
	if !ok || w == "" || h == "" || strings.Trim(w+h, "0123456789") != "" {
		return "", "", services.Wrap(services.ErrValidation, "encoding", "parse profile", fmt.Sprintf("resolution %q must be WIDTHxHEIGHT", p.Resolution), nil)
	}
	return w, h, nil
}

// BluRayFrameRate maps a profile frame rate to the value written into the
// multiplexer configuration.
func BluRayFrameRate(fps string) string {
	switch {
	case fps == "":
		return "23.976"
	case fps == "60":
		return "59.94"
	case fps == "30":
		return "29.97"
	case strings.Contains(fps, "24000/1001"):
		return "23.976"
	default:
		return fps
	}
}

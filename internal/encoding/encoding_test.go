package encoding

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"bdmenu/internal/config"
	"bdmenu/internal/services"
)

func TestMenuJobCommandDefaults(t *testing.T) {
	job := MenuJob{FFmpeg: "/opt/ffmpeg", ImagePath: `C:\work\menu_image.png`, Duration: 10}
	cmd, err := job.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	want := []string{
		"-loop", "1", "-i", "C:/work/menu_image.png",
		"-f", "lavfi", "-i", "anullsrc=channel_layout=stereo:sample_rate=48000",
		"-c:v", "libx264", "-preset", "medium", "-crf", "20",
		"-c:a", "ac3", "-b:a", "448k",
		"-t", "10.0",
		"-r", "23.976",
		"-vf", "scale=1920x1080,format=yuv420p",
		"-y", "C:/work/menu.m2ts",
	}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", cmd.Args, want)
	}
	if cmd.Binary != "/opt/ffmpeg" || cmd.Output != "C:/work/menu.m2ts" {
		t.Fatalf("unexpected command %+v", cmd)
	}
}

func TestMenuJobCommandUsesProfile(t *testing.T) {
	job := MenuJob{FFmpeg: "ffmpeg", ImagePath: "/v/menu_image.png", Duration: 12.5, Profile: Profile{Resolution: "1280x720", FPS: "30"}}
	cmd, err := job.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	args := map[string]string{}
	for i := 0; i+1 < len(cmd.Args); i++ {
		args[cmd.Args[i]] = cmd.Args[i+1]
	}
	if args["-t"] != "12.5" || args["-r"] != "30" || args["-vf"] != "scale=1280x720,format=yuv420p" {
		t.Fatalf("profile not applied: %q", cmd.Args)
	}
}

func TestMenuJobMissingTool(t *testing.T) {
	if _, err := (MenuJob{ImagePath: "/v/a.png", Duration: 10}).Command(); !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected tool missing, got %v", err)
	}
}

func TestFeatureJobCommandKeepSource(t *testing.T) {
	job := FeatureJob{FFmpeg: "ffmpeg", VideoPath: "/videos/movie.mkv", Encoder: EncoderX264}
	cmd, err := job.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	want := []string{
		"-i", "/videos/movie.mkv", "-map", "0:v:0", "-map", "0:a:0",
		"-c:v", "libx264", "-preset", "medium", "-crf", "20",
		"-pix_fmt", "yuv420p", "-c:a", "ac3", "-b:a", "448k", "-ar", "48000",
		"-y", "/videos/encoded_video.m2ts",
	}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", cmd.Args, want)
	}
	if cmd.Output != "/videos/encoded_video.m2ts" {
		t.Fatalf("unexpected output %q", cmd.Output)
	}
}

func TestFeatureJobCommandScalePadAndHardwareQuality(t *testing.T) {
	job := FeatureJob{FFmpeg: "ffmpeg", VideoPath: "/videos/movie.mkv", Encoder: EncoderNVENC, Profile: Profile{Resolution: "1920x1080", FPS: "24000/1001"}}
	cmd, err := job.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	want := []string{
		"-i", "/videos/movie.mkv", "-map", "0:v:0", "-map", "0:a:0",
		"-vf", "scale=1920x1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"-r", "24000/1001",
		"-c:v", "h264_nvenc", "-preset", "medium", "-cq", "20",
		"-pix_fmt", "yuv420p", "-c:a", "ac3", "-b:a", "448k", "-ar", "48000",
		"-y", "/videos/encoded_video.m2ts",
	}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", cmd.Args, want)
	}
}

func TestFeatureJobRejectsUnknownEncoder(t *testing.T) {
	job := FeatureJob{FFmpeg: "ffmpeg", VideoPath: "/v/m.mkv", Encoder: "libx265"}
	if _, err := job.Command(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQualityFlag(t *testing.T) {
	tests := map[Encoder]string{
		EncoderX264:  "-crf",
		EncoderNVENC: "-cq",
		EncoderAMF:   "-cq",
		EncoderQSV:   "-cq",
	}
	for enc, want := range tests {
		if got := enc.QualityFlag(); got != want {
			t.Fatalf("%s: got %s want %s", enc, got, want)
		}
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("1920x1080:24000/1001")
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}
	if p.Resolution != "1920x1080" || p.FPS != "24000/1001" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.String() != "1920x1080:24000/1001" {
		t.Fatalf("unexpected string %q", p.String())
	}
	zero, err := ParseProfile("")
	if err != nil || !zero.IsZero() {
		t.Fatalf("expected zero profile, got %+v %v", zero, err)
	}
	for _, bad := range []string{"1920x1080", "fullhd:30", "1920:30", ":60", "1920x1080:", "1920x1080:fast"} {
		if _, err := ParseProfile(bad); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("ParseProfile(%q): expected validation error, got %v", bad, err)
		}
	}
	for _, opt := range ProfileOptions {
		if _, err := ParseProfile(opt.Value); err != nil {
			t.Fatalf("option %q does not parse: %v", opt.Value, err)
		}
	}
}

func TestBluRayFrameRate(t *testing.T) {
	tests := map[string]string{
		"":           "23.976",
		"60":         "59.94",
		"30":         "29.97",
		"24000/1001": "23.976",
		"25":         "25",
		"50":         "50",
	}
	for in, want := range tests {
		if got := BluRayFrameRate(in); got != want {
			t.Fatalf("BluRayFrameRate(%q) = %q want %q", in, got, want)
		}
	}
}

func TestOutputNamesReservedInConfig(t *testing.T) {
	for _, name := range []string{MenuVideoName, FeatureVideoName} {
		if !slices.Contains(config.ReservedOutputNames, name) {
			t.Fatalf("config does not reserve %q", name)
		}
	}
}

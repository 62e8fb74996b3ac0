package authoring

import (
	"fmt"
	"strings"

	"bdmenu/internal/chapters"
	"bdmenu/internal/fileutil"
	"bdmenu/internal/services"
)

const muxOptions = "MUXOPT --no-pcr-on-video-pid --new-audio-pes --vbr --vbv-len=500 --blu-ray-iso"

// Meta describes the multiplexer configuration for one disc. Chapters holds
// the full chapter list as written after --chapters=.
type Meta struct {
	MenuVideo    string
	FeatureVideo string
	FPS          string
	Chapters     []string
}

// BuildChapters prefixes the origin to every effective chapter shifted by the
// menu duration. With chapters 00:00:00 and 00:05:00 and a ten second menu
// the result is 00:00:00, 00:00:10, 00:05:10.
func BuildChapters(effective []string, menuSeconds float64) ([]string, error) {
	shifted, err := chapters.Offset(effective, menuSeconds)
	if err != nil {
		return nil, err
	}
	return append([]string{chapters.Origin}, shifted...), nil
}

// Render produces the configuration file contents.
func (m Meta) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s --chapters=\"%s\"\n", muxOptions, strings.Join(m.Chapters, ";"))
	for _, track := range []string{m.MenuVideo, m.FeatureVideo} {
		fmt.Fprintf(&b, "V_MPEG4/ISO/AVC, \"%s\", track=1, fps=%s\n", track, m.FPS)
		fmt.Fprintf(&b, "A_AC3, \"%s\", track=1\n", track)
	}
	return b.String()
}

// WriteMeta renders m into path.
func WriteMeta(path string, m Meta) error {
	if strings.TrimSpace(m.MenuVideo) == "" || strings.TrimSpace(m.FeatureVideo) == "" {
		return services.Wrap(services.ErrValidation, "authoring", "write meta", "menu and feature videos are both required", nil)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(m.Render()), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "authoring", "write meta", path, err)
	}
	return nil
}

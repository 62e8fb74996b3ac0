package burning

import (
	"fmt"
	"runtime"
	"strings"

	"bdmenu/internal/fileutil"
	"bdmenu/internal/jobs"
	"bdmenu/internal/services"
)

// Job burns ISOPath to Drive.
type Job struct {
	ISOPath string
	Drive   string
	// GOOS selects the platform command; empty means the host platform.
	GOOS string
}

func (j Job) Kind() jobs.Kind { return jobs.KindBurn }

func (j Job) Command() (jobs.Command, error) {
	drive := strings.TrimSpace(j.Drive)
	if drive == "" {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "burn", "build command", "no drive selected", nil)
	}
	if !fileutil.Exists(j.ISOPath) {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "burn", "build command", fmt.Sprintf("ISO image %q does not exist", j.ISOPath), nil)
	}
	switch goos(j.GOOS) {
	case "windows":
		return jobs.Command{Binary: "isoburn.exe", Args: []string{"/Q", drive, j.ISOPath}, Output: j.ISOPath}, nil
	case "darwin":
		return jobs.Command{Binary: "drutil", Args: []string{"burn", "-device", drive, j.ISOPath}, Output: j.ISOPath}, nil
	default:
		return jobs.Command{}, unsupported(goos(j.GOOS), "burn")
	}
}

func goos(value string) string {
	if value == "" {
		return runtime.GOOS
	}
	return value
}

func unsupported(platform, operation string) error {
	return services.Wrap(services.ErrValidation, "burn", operation, fmt.Sprintf("disc burning is not supported on %s", platform), nil)
}

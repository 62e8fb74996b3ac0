package authoring

import (
	"context"
	"fmt"
	"strings"

	"bdmenu/internal/fileutil"
	"bdmenu/internal/jobs"
	"bdmenu/internal/services"
)

// Job runs tsMuxeR against a written configuration file.
type Job struct {
	TsMuxer    string
	MetaPath   string
	OutputPath string
}

func (j Job) Kind() jobs.Kind { return jobs.KindAuthoring }

// Prepare removes a stale image at the output path. Failure to remove it is
// reported and authoring proceeds; tsMuxeR may then fail on its own.
func (j Job) Prepare(_ context.Context, report jobs.Reporter) error {
	removed, err := fileutil.RemoveIfExists(j.OutputPath)
	if err != nil {
		report.Warn(fmt.Sprintf("could not remove existing image %s: %v", j.OutputPath, err),
			"stale_iso_remove_failed", "delete the old image manually if tsMuxeR fails to overwrite it")
		return nil
	}
	if removed {
		report.Info("removed existing image " + j.OutputPath)
	}
	return nil
}

func (j Job) Command() (jobs.Command, error) {
	if strings.TrimSpace(j.TsMuxer) == "" {
		return jobs.Command{}, services.Wrap(services.ErrToolMissing, "authoring", "build command", "tsMuxeR executable not found", nil)
	}
	if strings.TrimSpace(j.MetaPath) == "" || strings.TrimSpace(j.OutputPath) == "" {
		return jobs.Command{}, services.Wrap(services.ErrValidation, "authoring", "build command", "meta and output paths are required", nil)
	}
	return jobs.Command{
		Binary: j.TsMuxer,
		Args:   []string{j.MetaPath, j.OutputPath},
		Output: j.OutputPath,
	}, nil
}

// Finalize deletes the configuration file whatever the outcome.
func (j Job) Finalize(report jobs.Reporter) {
	if strings.TrimSpace(j.MetaPath) == "" {
		return
	}
	if _, err := fileutil.RemoveIfExists(j.MetaPath); err != nil {
		report.Warn(fmt.Sprintf("could not remove %s: %v", j.MetaPath, err),
			"meta_remove_failed", "delete the file manually")
	}
}

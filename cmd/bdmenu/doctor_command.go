package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"bdmenu/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			locator, err := ctx.locator()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cfg, locator, "")
			for _, line := range doctorLines(results, runtime.GOOS, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func doctorLines(results []preflight.Result, goos string, colorize bool) []string {
	lines := make([]string, 0, len(results)+2)
	failed := len(preflight.Failed(results))
	summary := renderStatusLine("Summary", statusOK, fmt.Sprintf("%d checks passed", len(results)), colorize)
	if failed > 0 {
		summary = renderStatusLine("Summary", statusError, fmt.Sprintf("%d of %d checks failed", failed, len(results)), colorize)
	}
	lines = append(lines, summary)
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	switch goos {
	case "windows", "darwin":
		lines = append(lines, renderStatusLine("Disc burning", statusOK, "supported on "+goos, colorize))
	default:
		lines = append(lines, renderStatusLine("Disc burning", statusWarn, "not supported on "+goos, colorize))
	}
	return lines
}

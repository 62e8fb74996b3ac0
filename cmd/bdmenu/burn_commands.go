package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bdmenu/internal/burning"
	"bdmenu/internal/jobs"
	"bdmenu/internal/pipeline"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var isoPath string
	var drive string

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn an existing disc image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(drive) == "" {
				drive = cfg.Burning.Drive
			}
			iso, err := filepath.Abs(strings.TrimSpace(isoPath))
			if err != nil {
				return err
			}
			job := burning.Job{ISOPath: iso, Drive: drive}
			if _, err := job.Command(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			runner := jobs.NewRunner(jobs.NewPool(1), logger)
			if err := runBurn(commandCtx(cmd), runner, job, out, shouldColorize(out)); err != nil {
				return err
			}
			fmt.Fprintf(out, "Burned %s to %s\n", iso, drive)
			return nil
		},
	}
	cmd.Flags().StringVar(&isoPath, "iso", "", "Disc image to burn")
	cmd.Flags().StringVar(&drive, "drive", "", "Target drive (defaults to [burning] drive)")
	return cmd
}

func newDrivesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List optical drives available for burning",
		RunE: func(cmd *cobra.Command, args []string) error {
			drives, err := burning.NewLister().List(commandCtx(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drives) == 0 {
				fmt.Fprintln(out, "No writable drives found")
				return nil
			}
			rows := make([][]string, 0, len(drives))
			for _, d := range drives {
				rows = append(rows, []string{d.Label, d.ID})
			}
			fmt.Fprintln(out, renderTable([]string{"Drive", "ID"}, rows, nil))
			return nil
		},
	}
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runBurn runs job to completion and streams its log lines to out. The
// burner is never cancelled once started, matching the pipeline's burn.
func runBurn(ctx context.Context, runner *jobs.Runner, job jobs.Job, out io.Writer, colorize bool) error {
	done := make(chan jobs.Event, 1)
	runner.Start(context.WithoutCancel(ctx), job, func(evt jobs.Event) {
		if evt.Type.Terminal() {
			done <- evt
			return
		}
		fmt.Fprintln(out, renderNotification(pipeline.Notification{Kind: pipeline.NotifyLog, Job: evt.Kind, Line: evt.Line}, colorize))
	})
	result := <-done
	runner.Wait()
	if result.Type == jobs.EventFailed {
		return result.Err
	}
	return nil
}

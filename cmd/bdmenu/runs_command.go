package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bdmenu/internal/history"
	"bdmenu/internal/pipeline"
	"bdmenu/internal/textutil"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent authoring runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(commandCtx(cmd), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRuns(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func renderRuns(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		outcome := r.ISOPath
		if r.ErrorKind != "" {
			outcome = textutil.Label(r.ErrorKind) + ": " + textutil.Truncate(r.ErrorMessage, 48)
		}
		rows = append(rows, []string{
			shortID(r.ID),
			pipeline.State(r.State).Label(),
			filepath.Base(r.VideoPath),
			outcome,
			humanize.Time(r.UpdatedAt),
		})
	}
	return renderTable([]string{"Run", "State", "Video", "Result", "Updated"}, rows, nil)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

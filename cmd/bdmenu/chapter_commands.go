package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bdmenu/internal/layout"
)

func newChapterCommand(ctx *commandContext) *cobra.Command {
	chapterCmd := &cobra.Command{
		Use:   "chapter",
		Short: "Manage chapters of a layout document",
	}
	chapterCmd.AddCommand(newChapterEditCommand(ctx, "add", "Add a chapter and its menu button", (*layout.Session).AddChapter))
	chapterCmd.AddCommand(newChapterEditCommand(ctx, "remove", "Remove a chapter and its menu button", (*layout.Session).RemoveChapter))
	chapterCmd.AddCommand(newChapterListCommand(ctx))
	return chapterCmd
}

func newChapterEditCommand(ctx *commandContext, verb, short string, edit func(*layout.Session, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " FILE HH:MM:SS",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := layout.Load(args[0], ctx.layoutDefaults())
			if err != nil {
				return err
			}
			if err := edit(session, args[1]); err != nil {
				return err
			}
			if err := layout.Save(args[0], session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chapters: %v\n", session.Chapters.EffectiveOrder())
			return nil
		},
	}
}

func newChapterListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List chapters in effective order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := layout.Load(args[0], ctx.layoutDefaults())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(session.Buttons))
			for i, b := range session.Buttons {
				rows = append(rows, []string{fmt.Sprint(i + 1), b.Chapter, b.Text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Chapter", "Button"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bdmenu/internal/layout"
	"bdmenu/internal/services"
	"bdmenu/internal/textutil"
)

func newLayoutCommand(ctx *commandContext) *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Create and edit menu layout documents",
	}
	layoutCmd.AddCommand(newLayoutInitCommand(ctx))
	layoutCmd.AddCommand(newLayoutShowCommand(ctx))
	layoutCmd.AddCommand(newLayoutSetTitleCommand(ctx))
	layoutCmd.AddCommand(newLayoutSetButtonCommand(ctx))
	return layoutCmd
}

func newLayoutInitCommand(ctx *commandContext) *cobra.Command {
	var background string
	var out string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a layout document for a background image",
		RunE: func(cmd *cobra.Command, args []string) error {
			bg, err := filepath.Abs(strings.TrimSpace(background))
			if err != nil || strings.TrimSpace(background) == "" {
				return services.Wrap(services.ErrValidation, "layout", "init", "--background is required", err)
			}
			if _, err := os.Stat(bg); err != nil {
				return services.Wrap(services.ErrValidation, "layout", "init", fmt.Sprintf("background %q is not readable", bg), err)
			}
			if !overwrite {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("layout file already exists at %s (use --overwrite to replace it)", out)
				}
			}
			session := layout.NewSession(ctx.layoutDefaults())
			if err := session.SetBackground(bg); err != nil {
				return err
			}
			if err := layout.Save(out, session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote layout to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&background, "background", "", "Background image for the menu")
	cmd.Flags().StringVarP(&out, "out", "o", "layout.json", "Layout document to create")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing layout document")
	return cmd
}

func newLayoutShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Show the items of a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := layout.Load(args[0], ctx.layoutDefaults())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Background: %s\n", session.Background)
			fmt.Fprintf(out, "Chapters:   %s\n", strings.Join(session.Chapters.EffectiveOrder(), ", "))
			fmt.Fprintln(out, renderItems(session.Items()))
			return nil
		},
	}
}

func renderItems(items []layout.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		x, y := item.Position()
		style := item.ItemStyle()
		chapter, size := "", ""
		if b, ok := item.(layout.Button); ok {
			chapter = b.Chapter
			size = formatNumber(b.Width) + "x" + formatNumber(b.Height)
		}
		rows = append(rows, []string{
			textutil.Label(string(item.Kind())),
			chapter,
			textutil.Truncate(style.Text, 32),
			formatNumber(x) + "," + formatNumber(y),
			size,
			fmt.Sprintf("%s %d", style.FontFamily, style.FontSize),
			style.FontColor,
			styleFlags(style),
		})
	}
	return renderTable(
		[]string{"Item", "Chapter", "Text", "Position", "Size", "Font", "Color", "Style"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func styleFlags(s layout.Style) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, " ")
}

// itemFlags holds the property-inspector flags shared by set-title and
// set-button. Only flags the user passed are applied.
type itemFlags struct {
	text   string
	font   string
	size   int
	color  string
	bold   bool
	italic bool
	x      float64
	y      float64
	width  float64
	height float64
}

func (f *itemFlags) register(cmd *cobra.Command, withSize bool) {
	cmd.Flags().StringVar(&f.text, "text", "", "Item text")
	cmd.Flags().StringVar(&f.font, "font", "", "Font family")
	cmd.Flags().IntVar(&f.size, "size", 0, "Font size")
	cmd.Flags().StringVar(&f.color, "color", "", "Font colour as #rrggbb")
	cmd.Flags().BoolVar(&f.bold, "bold", false, "Bold text")
	cmd.Flags().BoolVar(&f.italic, "italic", false, "Italic text")
	cmd.Flags().Float64Var(&f.x, "x", 0, "Horizontal position")
	cmd.Flags().Float64Var(&f.y, "y", 0, "Vertical position")
	if withSize {
		cmd.Flags().Float64Var(&f.width, "width", 0, "Button width")
		cmd.Flags().Float64Var(&f.height, "height", 0, "Button height")
	}
}

func (f *itemFlags) applyStyle(cmd *cobra.Command, s *layout.Style) {
	changed := cmd.Flags().Changed
	if changed("text") {
		s.Text = f.text
	}
	if changed("font") {
		s.FontFamily = f.font
	}
	if changed("size") {
		s.FontSize = f.size
	}
	if changed("color") {
		s.FontColor = strings.ToLower(f.color)
	}
	if changed("bold") {
		s.Bold = f.bold
	}
	if changed("italic") {
		s.Italic = f.italic
	}
}

func (f *itemFlags) applyPosition(cmd *cobra.Command, x, y *float64) {
	if cmd.Flags().Changed("x") {
		*x = f.x
	}
	if cmd.Flags().Changed("y") {
		*y = f.y
	}
}

func newLayoutSetTitleCommand(ctx *commandContext) *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "set-title FILE",
		Short: "Edit the menu title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := layout.Load(args[0], ctx.layoutDefaults())
			if err != nil {
				return err
			}
			flags.applyStyle(cmd, &session.Title.Style)
			flags.applyPosition(cmd, &session.Title.X, &session.Title.Y)
			if err := layout.Save(args[0], session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated title in %s\n", args[0])
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newLayoutSetButtonCommand(ctx *commandContext) *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "set-button FILE CHAPTER",
		Short: "Edit the button linked to a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := layout.Load(args[0], ctx.layoutDefaults())
			if err != nil {
				return err
			}
			button, ok := session.Button(args[1])
			if !ok {
				return services.Wrap(services.ErrNotFound, "layout", "set button", fmt.Sprintf("no button for chapter %s", args[1]), nil)
			}
			flags.applyStyle(cmd, &button.Style)
			flags.applyPosition(cmd, &button.X, &button.Y)
			if cmd.Flags().Changed("width") {
				button.Width = flags.width
			}
			if cmd.Flags().Changed("height") {
				button.Height = flags.height
			}
			if err := layout.Save(args[0], session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated button %s in %s\n", args[1], args[0])
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

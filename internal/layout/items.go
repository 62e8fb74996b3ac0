package layout

import (
	"fmt"

	"bdmenu/internal/config"
)

// ItemKind distinguishes the canvas item variants.
type ItemKind string

const (
	KindTitle  ItemKind = "title"
	KindButton ItemKind = "button"
)

// Style carries the text properties shared by every canvas item.
type Style struct {
	Text       string
	FontFamily string
	FontSize   int
	FontColor  string
	Bold       bool
	Italic     bool
}

// Item is implemented by Title and Button.
type Item interface {
	Kind() ItemKind
	Position() (x, y float64)
	ItemStyle() Style
}

// Title is the single free-floating text item on the menu.
type Title struct {
	X, Y float64
	Style
}

func (t Title) Kind() ItemKind               { return KindTitle }
func (t Title) Position() (float64, float64) { return t.X, t.Y }
func (t Title) ItemStyle() Style             { return t.Style }

// Button is a chapter-linked menu entry. Chapter is its key.
type Button struct {
	X, Y          float64
	Width, Height float64
	Chapter       string
	Style
}

func (b Button) Kind() ItemKind               { return KindButton }
func (b Button) Position() (float64, float64) { return b.X, b.Y }
func (b Button) ItemStyle() Style             { return b.Style }

// Defaults describes the properties given to items the user has not edited.
type Defaults struct {
	TitleText     string
	TitleX        float64
	TitleY        float64
	Title         config.TextDefaults
	Button        config.TextDefaults
	ButtonX       float64
	ButtonY       float64
	ButtonSpacing float64
	ButtonWidth   float64
	ButtonHeight  float64
}

// DefaultsFromConfig converts the [layout] configuration section.
func DefaultsFromConfig(cfg config.Layout) Defaults {
	return Defaults{
		TitleText:     cfg.TitleText,
		TitleX:        float64(cfg.TitleX),
		TitleY:        float64(cfg.TitleY),
		Title:         cfg.Title,
		Button:        cfg.Button,
		ButtonX:       float64(cfg.ButtonX),
		ButtonY:       float64(cfg.ButtonY),
		ButtonSpacing: float64(cfg.ButtonSpacing),
		ButtonWidth:   float64(cfg.ButtonWidth),
		ButtonHeight:  float64(cfg.ButtonHeight),
	}
}

// StandardDefaults returns the built-in defaults.
func StandardDefaults() Defaults {
	return DefaultsFromConfig(config.Default().Layout)
}

// DefaultTitle builds the title used when none has been saved.
func (d Defaults) DefaultTitle() Title {
	return Title{
		X: d.TitleX,
		Y: d.TitleY,
		Style: Style{
			Text:       d.TitleText,
			FontFamily: d.Title.FontFamily,
			FontSize:   d.Title.FontSize,
			FontColor:  d.Title.FontColor,
		},
	}
}

// DefaultButton builds the button for the chapter at position index of the
// effective order. Buttons are stacked vertically.
func (d Defaults) DefaultButton(index int, chapter string) Button {
	return Button{
		X:       d.ButtonX,
		Y:       d.ButtonY + float64(index)*d.ButtonSpacing,
		Width:   d.ButtonWidth,
		Height:  d.ButtonHeight,
		Chapter: chapter,
		Style: Style{
			Text:       fmt.Sprintf("Chapter %d", index+1),
			FontFamily: d.Button.FontFamily,
			FontSize:   d.Button.FontSize,
			FontColor:  d.Button.FontColor,
		},
	}
}

package layout

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"bdmenu/internal/chapters"
	"bdmenu/internal/fileutil"
	"bdmenu/internal/services"
)

//go:embed schema.json
var documentSchema string

// TextSnapshot is the persisted form of a title (and the shared part of a
// button).
type TextSnapshot struct {
	Text       string  `json:"text"`
	PosX       float64 `json:"pos_x"`
	PosY       float64 `json:"pos_y"`
	FontFamily string  `json:"font_family" validate:"required"`
	FontSize   int     `json:"font_size" validate:"gt=0"`
	FontColor  string  `json:"font_color" validate:"hexcolor"`
	Bold       bool    `json:"is_bold"`
	Italic     bool    `json:"is_italic"`
}

// ButtonSnapshot is the persisted form of a button.
type ButtonSnapshot struct {
	TextSnapshot
	Width   float64 `json:"width" validate:"gte=0"`
	Height  float64 `json:"height" validate:"gte=0"`
	TimeStr string  `json:"time_str" validate:"chapter"`
}

// Document is the persisted layout. Chapters lists explicit chapters only.
type Document struct {
	Background string           `json:"background" validate:"required"`
	Chapters   []string         `json:"chapters" validate:"dive,chapter"`
	Title      *TextSnapshot    `json:"title,omitempty"`
	Buttons    []ButtonSnapshot `json:"buttons" validate:"dive"`
}

var documentValidator = newDocumentValidator()

func newDocumentValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("chapter", func(fl validator.FieldLevel) bool {
		return chapters.Valid(fl.Field().String())
	})
	return v
}

// Validate checks field rules: non-empty background, well-formed chapters,
// positive font sizes and hex colours.
func (d Document) Validate() error {
	if err := documentValidator.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return services.Wrap(services.ErrParse, "layout", "validate", fmt.Sprintf("field %s fails %q", fe.Namespace(), fe.Tag()), nil)
		}
		return services.Wrap(services.ErrParse, "layout", "validate", "", err)
	}
	return nil
}

// Encode renders doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Chapters == nil {
		doc.Chapters = []string{}
	}
	if doc.Buttons == nil {
		doc.Buttons = []ButtonSnapshot{}
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "layout", "encode", "", err)
	}
	return append(data, '\n'), nil
}

// Decode parses and validates a layout document.
func Decode(data []byte) (Document, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(documentSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Document{}, services.Wrap(services.ErrParse, "layout", "decode", "malformed layout document", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, field+": "+desc.Description())
		}
		return Document{}, services.Wrap(services.ErrParse, "layout", "decode", strings.Join(problems, "; "), nil)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, services.Wrap(services.ErrParse, "layout", "decode", "", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Save writes the session's document to path. The document must pass the
// same validation Load applies, so a saved file always loads back.
func Save(path string, s *Session) error {
	if strings.TrimSpace(s.Background) == "" {
		return services.Wrap(services.ErrValidation, "layout", "save", "no background image set", nil)
	}
	doc := s.Document()
	if err := doc.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "layout", "save", "invalid item property", err)
	}
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "layout", "save", "write "+path, err)
	}
	return nil
}

// Load reads path into a new session built with defaults.
func Load(path string, defaults Defaults) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "layout", "load", path, err)
		}
		return nil, services.Wrap(services.ErrParse, "layout", "load", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s := NewSession(defaults)
	if err := s.Apply(doc); err != nil {
		return nil, err
	}
	return s, nil
}

func snapshotTitle(t Title) TextSnapshot {
	return TextSnapshot{
		Text:       t.Text,
		PosX:       t.X,
		PosY:       t.Y,
		FontFamily: t.FontFamily,
		FontSize:   t.FontSize,
		FontColor:  t.FontColor,
		Bold:       t.Bold,
		Italic:     t.Italic,
	}
}

func snapshotButton(b Button) ButtonSnapshot {
	return ButtonSnapshot{
		TextSnapshot: TextSnapshot{
			Text:       b.Text,
			PosX:       b.X,
			PosY:       b.Y,
			FontFamily: b.FontFamily,
			FontSize:   b.FontSize,
			FontColor:  b.FontColor,
			Bold:       b.Bold,
			Italic:     b.Italic,
		},
		Width:   b.Width,
		Height:  b.Height,
		TimeStr: b.Chapter,
	}
}

func (t TextSnapshot) style() Style {
	return Style{
		Text:       t.Text,
		FontFamily: t.FontFamily,
		FontSize:   t.FontSize,
		FontColor:  t.FontColor,
		Bold:       t.Bold,
		Italic:     t.Italic,
	}
}

func (t TextSnapshot) title() Title {
	return Title{X: t.PosX, Y: t.PosY, Style: t.style()}
}

func (b ButtonSnapshot) button() Button {
	return Button{
		X:       b.PosX,
		Y:       b.PosY,
		Width:   b.Width,
		Height:  b.Height,
		Chapter: b.TimeStr,
		Style:   b.style(),
	}
}

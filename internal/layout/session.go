package layout

import (
	"strings"

	"github.com/samber/lo"

	"bdmenu/internal/chapters"
	"bdmenu/internal/services"
)

// Session is the editable authoring state: background, source video, chapter
// set and canvas items. It is not safe for concurrent use.
type Session struct {
	Background string
	Video      string
	Chapters   *chapters.Set
	Title      Title
	Buttons    []Button

	defaults Defaults
}

// NewSession returns an empty session holding only the origin chapter.
func NewSession(defaults Defaults) *Session {
	set, _ := chapters.NewSet()
	s := &Session{
		Chapters: set,
		Title:    defaults.DefaultTitle(),
		defaults: defaults,
	}
	s.Sync()
	return s
}

// Defaults returns the item defaults this session was built with.
func (s *Session) Defaults() Defaults {
	return s.defaults
}

// SetBackground records the background image and rebuilds the layout.
func (s *Session) SetBackground(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrValidation, "layout", "set background", "background path is empty", nil)
	}
	s.Background = path
	s.Sync()
	return nil
}

// AddChapter adds a chapter and creates its default button.
func (s *Session) AddChapter(ts string) error {
	if err := s.Chapters.Add(ts); err != nil {
		return err
	}
	s.Sync()
	return nil
}

// RemoveChapter removes a chapter and its button.
func (s *Session) RemoveChapter(ts string) error {
	if err := s.Chapters.Remove(ts); err != nil {
		return err
	}
	s.Sync()
	return nil
}

// Sync reconciles the button list with the effective chapter order. Edited
// buttons keep their properties; new chapters get stacked defaults; buttons
// for removed chapters are discarded.
func (s *Session) Sync() {
	existing := lo.KeyBy(s.Buttons, func(b Button) string { return b.Chapter })
	s.Buttons = s.buildButtons(existing)
}

func (s *Session) buildButtons(saved map[string]Button) []Button {
	order := s.Chapters.EffectiveOrder()
	return lo.Map(order, func(chapter string, i int) Button {
		if b, ok := saved[chapter]; ok {
			return b
		}
		return s.defaults.DefaultButton(i, chapter)
	})
}

// Button returns the button keyed by chapter.
func (s *Session) Button(chapter string) (*Button, bool) {
	for i := range s.Buttons {
		if s.Buttons[i].Chapter == chapter {
			return &s.Buttons[i], true
		}
	}
	return nil, false
}

// Items lists the title followed by every button.
func (s *Session) Items() []Item {
	items := make([]Item, 0, len(s.Buttons)+1)
	items = append(items, s.Title)
	for _, b := range s.Buttons {
		items = append(items, b)
	}
	return items
}

// Document snapshots the session.
func (s *Session) Document() Document {
	title := snapshotTitle(s.Title)
	return Document{
		Background: s.Background,
		Chapters:   s.Chapters.Explicit(),
		Title:      &title,
		Buttons:    lo.Map(s.Buttons, func(b Button, _ int) ButtonSnapshot { return snapshotButton(b) }),
	}
}

// Apply replaces the session contents with doc. The document is validated
// first; on error the session is unchanged. Button snapshots whose chapter is
// not in doc.Chapters are dropped and chapters without a snapshot get default
// buttons.
func (s *Session) Apply(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := s.Chapters.Replace(doc.Chapters); err != nil {
		return err
	}
	s.Background = doc.Background
	if doc.Title != nil {
		s.Title = doc.Title.title()
	} else {
		s.Title = s.defaults.DefaultTitle()
	}
	saved := make(map[string]Button, len(doc.Buttons))
	for _, snap := range doc.Buttons {
		if _, dup := saved[snap.TimeStr]; dup {
			continue
		}
		saved[snap.TimeStr] = snap.button()
	}
	s.Buttons = s.buildButtons(saved)
	return nil
}

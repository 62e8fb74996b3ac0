package chapters

import (
	"fmt"
	"regexp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"bdmenu/internal/services"
)

// Origin is the implicit first chapter present on every disc.
const Origin = "00:00:00"

// Minutes and seconds are restricted to 00-59 so lexicographic order matches
// chronological order.
var timestampPattern = regexp.MustCompile(`^\d{2}:[0-5]\d:[0-5]\d$`)

// Set is an ordered set of HH:MM:SS chapter timestamps. The zero value is not
// usable; construct with NewSet.
type Set struct {
	values mapset.Set[string]
}

// NewSet returns a set holding the provided explicit chapters.
func NewSet(initial ...string) (*Set, error) {
	s := &Set{values: mapset.NewThreadUnsafeSet[string]()}
	if err := s.Replace(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// Valid reports whether ts is a well-formed chapter timestamp.
func Valid(ts string) bool {
	return timestampPattern.MatchString(ts)
}

// Add inserts an explicit chapter.
func (s *Set) Add(ts string) error {
	if !Valid(ts) {
		return services.Wrap(services.ErrValidation, "chapters", "add", fmt.Sprintf("invalid timestamp %q, expected HH:MM:SS", ts), nil)
	}
	if ts == Origin || s.values.Contains(ts) {
		return services.Wrap(services.ErrValidation, "chapters", "add", fmt.Sprintf("chapter %s already exists", ts), nil)
	}
	s.values.Add(ts)
	return nil
}

// Remove deletes an explicit chapter. The origin cannot be removed.
func (s *Set) Remove(ts string) error {
	if ts == Origin {
		return services.Wrap(services.ErrValidation, "chapters", "remove", "the 00:00:00 chapter cannot be removed", nil)
	}
	if !s.values.Contains(ts) {
		return services.Wrap(services.ErrValidation, "chapters", "remove", fmt.Sprintf("chapter %s not found", ts), nil)
	}
	s.values.Remove(ts)
	return nil
}

// Contains reports whether ts is part of the effective order.
func (s *Set) Contains(ts string) bool {
	return ts == Origin || s.values.Contains(ts)
}

// Explicit returns the user-added chapters in ascending order.
func (s *Set) Explicit() []string {
	out := s.values.ToSlice()
	slices.Sort(out)
	return out
}

// EffectiveOrder returns all chapters ascending with the origin first.
func (s *Set) EffectiveOrder() []string {
	return append([]string{Origin}, s.Explicit()...)
}

// Len counts chapters in the effective order.
func (s *Set) Len() int {
	return s.values.Cardinality() + 1
}

// Replace swaps the contents for list. Every entry is validated before the
// set changes; duplicates and the origin are dropped.
func (s *Set) Replace(list []string) error {
	next := mapset.NewThreadUnsafeSet[string]()
	for _, ts := range list {
		if !Valid(ts) {
			return services.Wrap(services.ErrValidation, "chapters", "replace", fmt.Sprintf("invalid timestamp %q, expected HH:MM:SS", ts), nil)
		}
		if ts == Origin {
			continue
		}
		next.Add(ts)
	}
	s.values = next
	return nil
}

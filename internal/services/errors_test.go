package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"bdmenu/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "authoring", "run tsmuxer", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"authoring", "run tsmuxer", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrValidation, "chapters", "add", "bad", nil), services.KindValidation},
		{services.Wrap(services.ErrToolMissing, "menu", "locate", "ffmpeg", nil), services.KindToolMissing},
		{services.Wrap(services.ErrExternalTool, "feature", "run", "exit 1", nil), services.KindProcessFailure},
		{fmt.Errorf("load: %w", services.Wrap(services.ErrParse, "layout", "decode", "", nil)), services.KindParse},
		{services.Wrap(services.ErrConfiguration, "config", "", "", nil), services.KindConfiguration},
		{services.Wrap(services.ErrIO, "render", "copy", "menu_image.png", errors.New("disk full")), services.KindIO},
		{services.Wrap(services.ErrIO, "pipeline", "render", "", services.Wrap(services.ErrValidation, "render", "", "no background", nil)), services.KindValidation},
		{errors.New("plain"), services.KindFailure},
	}
	for _, tc := range cases {
		if got := services.Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

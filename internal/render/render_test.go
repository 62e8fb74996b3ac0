package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bdmenu/internal/layout"
	"bdmenu/internal/services"
)

func TestBackgroundRendererCopiesImage(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(bg, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "menu_image.png")

	if err := (BackgroundRenderer{}).Render(context.Background(), layout.Document{Background: bg}, dest); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "png-bytes" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestBackgroundRendererMissingBackground(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "menu_image.png")
	for _, bg := range []string{"", filepath.Join(t.TempDir(), "nope.png")} {
		err := (BackgroundRenderer{}).Render(context.Background(), layout.Document{Background: bg}, dest)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("background %q: expected validation error, got %v", bg, err)
		}
	}
}

func TestBackgroundRendererKeepsBackgroundAtDestination(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "menu_image.png")
	if err := os.WriteFile(bg, []byte("user background"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (BackgroundRenderer{}).Render(context.Background(), layout.Document{Background: bg}, bg); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got, err := os.ReadFile(bg)
	if err != nil {
		t.Fatalf("background removed: %v", err)
	}
	if string(got) != "user background" {
		t.Fatalf("background content changed to %q", got)
	}
}

func TestBackgroundRendererCopyFailureIsIOError(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(bg, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "missing-dir", "menu_image.png")

	err := (BackgroundRenderer{}).Render(context.Background(), layout.Document{Background: bg}, dest)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if errors.Is(err, services.ErrValidation) {
		t.Fatalf("copy failure must not be a validation error: %v", err)
	}
}

func TestRendererFunc(t *testing.T) {
	called := false
	var r Renderer = RendererFunc(func(context.Context, layout.Document, string) error {
		called = true
		return nil
	})
	if err := r.Render(context.Background(), layout.Document{}, "x"); err != nil || !called {
		t.Fatalf("expected func to run, err=%v", err)
	}
}

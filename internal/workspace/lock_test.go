package workspace

import (
	"errors"
	"path/filepath"
	"testing"

	"bdmenu/internal/services"
)

func TestAcquireRejectsSecondHolder(t *testing.T) {
	dir := t.TempDir()
	first, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first.Path() != filepath.Join(dir, LockName) {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := Acquire(dir); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for held lock, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = second.Release()
}

func TestAcquireMissingDirectory(t *testing.T) {
	if _, err := Acquire(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}

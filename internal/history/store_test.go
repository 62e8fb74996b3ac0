package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bdmenu/internal/services"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordInsertsThenUpdates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	if err := store.Record(ctx, Run{ID: "run-1", State: "encoding", VideoPath: "/videos/feature.mkv"}); err != nil {
		t.Fatalf("Record insert: %v", err)
	}

	store.now = func() time.Time { return base.Add(time.Minute) }
	if err := store.Record(ctx, Run{
		ID:        "run-1",
		State:     "awaiting_burn",
		VideoPath: "/videos/feature.mkv",
		ISOPath:   "/videos/BDMV_MENU.iso",
	}); err != nil {
		t.Fatalf("Record update: %v", err)
	}

	run, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run.State != "awaiting_burn" || run.ISOPath != "/videos/BDMV_MENU.iso" {
		t.Fatalf("unexpected run: %#v", run)
	}
	if !run.CreatedAt.Equal(base) {
		t.Fatalf("expected created_at to keep first insert, got %v", run.CreatedAt)
	}
	if !run.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("expected updated_at to advance, got %v", run.UpdatedAt)
	}
}

func TestRecordRequiresID(t *testing.T) {
	store := openTestStore(t)
	err := store.Record(context.Background(), Run{State: "idle"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMissingRun(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return at }
		if err := store.Record(ctx, Run{ID: id, State: "done"}); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected order: %#v", runs)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(context.Background(), Run{ID: "persisted", State: "failed", ErrorKind: "process_failure"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	run, err := reopened.Get(context.Background(), "persisted")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if run.ErrorKind != "process_failure" {
		t.Fatalf("unexpected error kind %q", run.ErrorKind)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	store.Close()

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestIsSQLiteBusy(t *testing.T) {
	if isSQLiteBusy(nil) {
		t.Fatal("nil is not busy")
	}
	if !isSQLiteBusy(errors.New("database is locked")) {
		t.Fatal("expected locked message to be busy")
	}
	if isSQLiteBusy(errors.New("no such table")) {
		t.Fatal("unexpected busy classification")
	}
}

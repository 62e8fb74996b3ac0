package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bdmenu/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bdmenu.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	lines, offset, err := logs.Last(path, 2, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset != 6 {
		t.Fatalf("offset = %d, want 6", offset)
	}

	lines, _, err = logs.Last(path, 10, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 3 || lines[0] != "a" {
		t.Fatalf("expected every line when limit exceeds count, got %#v", lines)
	}
}

func TestLastAppliesFilter(t *testing.T) {
	path := writeLog(t, "run_id=1 start\nrun_id=2 start\nrun_id=1 done\n")

	lines, _, err := logs.Last(path, 5, logs.Contains("run_id=1"))
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 2 || lines[1] != "run_id=1 done" {
		t.Fatalf("unexpected filtered lines: %#v", lines)
	}
	if logs.Contains("  ") != nil {
		t.Fatal("blank needle should disable filtering")
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	lines, offset, err := logs.Last(path, 5, nil)
	if err != nil || len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v %d %v", lines, offset, err)
	}
}

func TestSinceHoldsPartialLine(t *testing.T) {
	path := writeLog(t, "first\n")
	_, offset, err := logs.Last(path, 0, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	appendLog(t, path, "second\nthi")
	lines, next, err := logs.Since(path, offset, nil)
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if len(lines) != 1 || lines[0] != "second" {
		t.Fatalf("unexpected lines: %#v", lines)
	}

	appendLog(t, path, "rd\n")
	lines, _, err = logs.Since(path, next, nil)
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if len(lines) != 1 || lines[0] != "third" {
		t.Fatalf("expected completed partial line, got %#v", lines)
	}
}

func TestSinceRestartsAfterTruncation(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\n")
	if err := os.WriteFile(path, []byte("fresh\n"), 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	lines, _, err := logs.Since(path, 14, nil)
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if len(lines) != 1 || lines[0] != "fresh" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestFollowDeliversAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	_, offset, err := logs.Last(path, 1, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	received := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, 10*time.Millisecond, nil, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
			close(received)
		})
	}()

	appendLog(t, path, "later\n")
	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not deliver the appended line")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "later" {
		t.Fatalf("unexpected lines: %#v", got)
	}
}

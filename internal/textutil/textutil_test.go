package textutil

import "testing"

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"awaiting_burn": "Awaiting Burn",
		"menu_video":    "Menu Video",
		"idle":          "Idle",
		"":              "",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("/very/long/path/to/video.mkv", 12); got != "/very/lon..." {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected %q", got)
	}
}

package authoring

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bdmenu/internal/services"
)

type captureReporter struct {
	infos []string
	warns []string
}

func (c *captureReporter) Info(msg string)       { c.infos = append(c.infos, msg) }
func (c *captureReporter) Warn(msg, _, _ string) { c.warns = append(c.warns, msg) }

func TestBuildChapters(t *testing.T) {
	got, err := BuildChapters([]string{"00:00:00", "00:05:00"}, 10)
	if err != nil {
		t.Fatalf("BuildChapters: %v", err)
	}
	want := []string{"00:00:00", "00:00:10", "00:05:10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if strings.Join(got, ";") != "00:00:00;00:00:10;00:05:10" {
		t.Fatalf("unexpected joined form %q", strings.Join(got, ";"))
	}
}

func TestMetaRender(t *testing.T) {
	m := Meta{
		MenuVideo:    "/v/menu.m2ts",
		FeatureVideo: "/v/encoded_video.m2ts",
		FPS:          "23.976",
		Chapters:     []string{"00:00:00", "00:00:10"},
	}
	want := "MUXOPT --no-pcr-on-video-pid --new-audio-pes --vbr --vbv-len=500 --blu-ray-iso --chapters=\"00:00:00;00:00:10\"\n" +
		"V_MPEG4/ISO/AVC, \"/v/menu.m2ts\", track=1, fps=23.976\n" +
		"A_AC3, \"/v/menu.m2ts\", track=1\n" +
		"V_MPEG4/ISO/AVC, \"/v/encoded_video.m2ts\", track=1, fps=23.976\n" +
		"A_AC3, \"/v/encoded_video.m2ts\", track=1\n"
	if got := m.Render(); got != want {
		t.Fatalf("unexpected meta:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteMetaRequiresVideos(t *testing.T) {
	err := WriteMeta(filepath.Join(t.TempDir(), "tsmuxer.meta"), Meta{MenuVideo: "/v/menu.m2ts"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobCommand(t *testing.T) {
	job := Job{TsMuxer: "/opt/tsMuxeR", MetaPath: "/v/tsmuxer.meta", OutputPath: "/v/BDMV_MENU.iso"}
	cmd, err := job.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if cmd.Binary != "/opt/tsMuxeR" || !reflect.DeepEqual(cmd.Args, []string{"/v/tsmuxer.meta", "/v/BDMV_MENU.iso"}) || cmd.Output != "/v/BDMV_MENU.iso" {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if _, err := (Job{MetaPath: "a", OutputPath: "b"}).Command(); !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected tool missing, got %v", err)
	}
}

func TestPrepareRemovesStaleImageAndFinalizeRemovesMeta(t *testing.T) {
	dir := t.TempDir()
	iso := filepath.Join(dir, "BDMV_MENU.iso")
	meta := filepath.Join(dir, "tsmuxer.meta")
	if err := os.WriteFile(iso, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteMeta(meta, Meta{MenuVideo: "m", FeatureVideo: "f", FPS: "23.976", Chapters: []string{"00:00:00"}}); err != nil {
		t.Fatalf("WriteMeta: %v", err)
	}

	job := Job{TsMuxer: "tsMuxeR", MetaPath: meta, OutputPath: iso}
	report := &captureReporter{}
	if err := job.Prepare(context.Background(), report); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := os.Stat(iso); !os.IsNotExist(err) {
		t.Fatalf("expected stale image removed, stat err %v", err)
	}
	if len(report.infos) != 1 {
		t.Fatalf("expected removal to be reported, got %v", report.infos)
	}

	job.Finalize(report)
	if _, err := os.Stat(meta); !os.IsNotExist(err) {
		t.Fatalf("expected meta removed, stat err %v", err)
	}
	if len(report.warns) != 0 {
		t.Fatalf("unexpected warnings %v", report.warns)
	}
}

func TestPrepareWarnsAndContinuesWhenRemovalFails(t *testing.T) {
	dir := t.TempDir()
	iso := filepath.Join(dir, "BDMV_MENU.iso")
	// A non-empty directory cannot be removed with os.Remove.
	if err := os.MkdirAll(filepath.Join(iso, "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	report := &captureReporter{}
	if err := (Job{TsMuxer: "tsMuxeR", MetaPath: "m", OutputPath: iso}).Prepare(context.Background(), report); err != nil {
		t.Fatalf("Prepare must not fail: %v", err)
	}
	if len(report.warns) != 1 {
		t.Fatalf("expected one warning, got %v", report.warns)
	}
}

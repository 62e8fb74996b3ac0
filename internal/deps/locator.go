package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"bdmenu/internal/config"
	"bdmenu/internal/services"
)

// Tool names as shipped. The Windows builds carry an .exe suffix.
const (
	ToolFFmpeg  = "ffmpeg"
	ToolTsMuxer = "tsMuxeR"
)

// Locator resolves external tool paths. It never executes anything.
//
// Lookup order: a configured override, then BaseDir (the directory holding
// the running bdmenu executable), then PATH.
type Locator struct {
	BaseDir   string
	Overrides map[string]string
	GOOS      string
}

// NewLocator builds a locator rooted next to the running executable.
func NewLocator(overrides map[string]string) *Locator {
	base := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		base = filepath.Dir(exe)
	}
	return &Locator{BaseDir: base, Overrides: overrides, GOOS: runtime.GOOS}
}

// LocatorFromConfig wires [tools] overrides into a locator.
func LocatorFromConfig(cfg *config.Config) *Locator {
	overrides := map[string]string{}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.Tools.FFmpeg); v != "" {
			overrides[ToolFFmpeg] = v
		}
		if v := strings.TrimSpace(cfg.Tools.TsMuxer); v != "" {
			overrides[ToolTsMuxer] = v
		}
	}
	return NewLocator(overrides)
}

// Locate returns the absolute path to name or an ErrToolMissing error.
func (l *Locator) Locate(name string) (string, error) {
	if override := strings.TrimSpace(l.Overrides[name]); override != "" {
		if info, err := os.Stat(override); err == nil && isExecutable(info, l.goos()) {
			return filepath.Abs(override)
		}
		return "", services.Wrap(services.ErrToolMissing, "deps", "locate", fmt.Sprintf("configured %s %q is not an executable file", name, override), nil)
	}

	binary := l.executableName(name)
	if l.BaseDir != "" {
		candidate := filepath.Join(l.BaseDir, binary)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info, l.goos()) {
			return filepath.Abs(candidate)
		}
	}
	if resolved, err := exec.LookPath(binary); err == nil {
		return filepath.Abs(resolved)
	}
	return "", services.Wrap(services.ErrToolMissing, "deps", "locate", fmt.Sprintf("%s not found next to bdmenu or on PATH", binary), nil)
}

func (l *Locator) executableName(name string) string {
	if l.goos() == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

func (l *Locator) goos() string {
	if l.GOOS == "" {
		return runtime.GOOS
	}
	return l.GOOS
}

func isExecutable(info os.FileInfo, goos string) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if goos == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

package burning

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"bdmenu/internal/services"
)

// Drive is a burner as shown to the user. ID is what Job.Drive expects.
type Drive struct {
	Label string
	ID    string
}

var (
	wmicLinePattern = regexp.MustCompile(`^\s*([A-Z]:)\s*(.*)`)
	drutilDevice    = regexp.MustCompile(`/dev/(disk\d+)`)
)

// ParseWMIC parses `wmic cdrom get Drive, MediaType` output.
func ParseWMIC(output string) []Drive {
	var drives []Drive
	for _, line := range strings.Split(output, "\n") {
		m := wmicLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		media := strings.TrimSpace(m[2])
		if media == "" {
			media = "no media"
		}
		drives = append(drives, Drive{Label: fmt.Sprintf("%s (%s)", m[1], media), ID: m[1]})
	}
	return drives
}

// ParseDrutil parses `drutil list` output. A device line carrying Vendor and
// Product names the disk; the following Type line decides whether it is an
// optical burner.
func ParseDrutil(output string) []Drive {
	var drives []Drive
	current := ""
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Vendor") && strings.Contains(line, "Product") {
			if m := drutilDevice.FindStringSubmatch(line); m != nil {
				current = m[1]
			}
		}
		if current != "" && strings.Contains(line, "Type") && containsAny(line, "CD", "DVD", "BD") {
			drives = append(drives, Drive{Label: current + " (optical drive)", ID: current})
			current = ""
		}
	}
	return lo.UniqBy(drives, func(d Drive) string { return d.ID })
}

func containsAny(s string, subs ...string) bool {
	return lo.SomeBy(subs, func(sub string) bool { return strings.Contains(s, sub) })
}

// CommandOutput runs a listing command and returns its stdout.
type CommandOutput func(ctx context.Context, name string, args ...string) (string, error)

func execOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output() //nolint:gosec
	return string(out), err
}

// Lister enumerates drives on the host platform.
type Lister struct {
	GOOS string
	Run  CommandOutput
}

// NewLister returns a lister for the running platform.
func NewLister() *Lister {
	return &Lister{Run: execOutput}
}

// List returns the available drives.
func (l *Lister) List(ctx context.Context) ([]Drive, error) {
	run := l.Run
	if run == nil {
		run = execOutput
	}
	switch platform := goos(l.GOOS); platform {
	case "windows":
		out, err := run(ctx, "wmic", "cdrom", "get", "Drive, MediaType")
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "burn", "list drives", "wmic", err)
		}
		return ParseWMIC(out), nil
	case "darwin":
		out, err := run(ctx, "drutil", "list")
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "burn", "list drives", "drutil", err)
		}
		return ParseDrutil(out), nil
	default:
		return nil, unsupported(platform, "list drives")
	}
}

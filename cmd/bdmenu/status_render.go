package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"bdmenu/internal/jobs"
	"bdmenu/internal/pipeline"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColor(kind) + base + ansiReset
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

// jobColor keeps the two concurrent encodes visually apart.
func jobColor(kind jobs.Kind) string {
	switch kind {
	case jobs.KindMenu:
		return ansiCyan
	case jobs.KindFeature:
		return ansiMagenta
	case jobs.KindAuthoring:
		return ansiBlue
	case jobs.KindBurn:
		return ansiYellow
	default:
		return ""
	}
}

// renderNotification formats one pipeline notification for the terminal.
func renderNotification(n pipeline.Notification, colorize bool) string {
	if n.Kind == pipeline.NotifyState {
		line := "== " + n.State.Label()
		if n.Err != nil {
			line += ": " + n.Err.Error()
		}
		if !colorize {
			return line
		}
		color := ansiGreen
		if n.State == pipeline.StateFailed {
			color = ansiRed
		}
		return color + line + ansiReset
	}
	prefix := "pipeline"
	if n.Job != "" {
		prefix = string(n.Job)
	}
	prefix = "[" + prefix + "]"
	if colorize {
		if color := jobColor(n.Job); color != "" {
			prefix = color + prefix + ansiReset
		}
	}
	return prefix + " " + n.Line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

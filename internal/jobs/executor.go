package jobs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"bdmenu/internal/services"
)

const tailLines = 20

// Executor runs a binary, forwarding each output line to onLine.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// ExitError describes a process that ran and exited non-zero.
type ExitError struct {
	Binary string
	Code   int
	Tail   []string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.Code)
	if len(e.Tail) > 0 {
		msg += ": " + e.Tail[len(e.Tail)-1]
	}
	return msg
}

// CommandExecutor runs processes with stdout and stderr merged into a single
// pipe so lines arrive in the order the tool wrote them.
type CommandExecutor struct{}

func (CommandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	reader, writer, err := os.Pipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "jobs", "open pipe", binary, err)
	}
	defer reader.Close()

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = writer
	cmd.Stderr = writer
	if err := cmd.Start(); err != nil {
		writer.Close()
		return services.Wrap(services.ErrExternalTool, "jobs", "start", binary, err)
	}
	// The child holds its own copy; closing ours lets the scanner see EOF.
	writer.Close()

	tail := make([]string, 0, tailLines)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanOutputLines)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" {
			continue
		}
		if len(tail) == tailLines {
			tail = tail[1:]
		}
		tail = append(tail, line)
		if onLine != nil {
			onLine(line)
		}
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return services.Wrap(services.ErrExternalTool, "jobs", "run", "", &ExitError{Binary: binary, Code: exitErr.ExitCode(), Tail: tail})
		}
		return services.Wrap(services.ErrExternalTool, "jobs", "wait", binary, waitErr)
	}
	if scanErr != nil {
		return services.Wrap(services.ErrExternalTool, "jobs", "scan output", binary, scanErr)
	}
	return nil
}

// scanOutputLines splits on \n, \r\n or a bare \r, which ffmpeg uses for
// progress updates.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

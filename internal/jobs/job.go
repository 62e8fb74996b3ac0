package jobs

import (
	"context"
	"strings"
)

// Kind names a job variant.
type Kind string

const (
	KindMenu      Kind = "menu_video"
	KindFeature   Kind = "feature_video"
	KindAuthoring Kind = "authoring"
	KindBurn      Kind = "burn"
)

// Command is a fully resolved process invocation.
type Command struct {
	Binary string
	Args   []string
	// Output is the artifact path reported on success. It may be empty.
	Output string
}

// String renders the command line for logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Binary))
	for _, arg := range c.Args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\"'") {
		return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
	}
	return arg
}

// Job builds the command for one external process. Command errors (missing
// tool, bad input) become the job's failure event without launching anything.
type Job interface {
	Kind() Kind
	Command() (Command, error)
}

// Reporter lets job hooks write to the job's log stream.
type Reporter interface {
	Info(msg string)
	Warn(msg, eventType, hint string)
}

// Preparer is implemented by jobs that need work done before launch.
type Preparer interface {
	Prepare(ctx context.Context, report Reporter) error
}

// Finalizer is implemented by jobs that clean up after the process exits,
// whatever the outcome.
type Finalizer interface {
	Finalize(report Reporter)
}

package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"bdmenu/internal/config"
	"bdmenu/internal/encoding"
	"bdmenu/internal/history"
	"bdmenu/internal/jobs"
	"bdmenu/internal/services"
	"bdmenu/internal/textutil"
)

// State is a pipeline stage.
type State string

const (
	StateIdle         State = "idle"
	StateRendering    State = "rendering"
	StateEncoding     State = "encoding"
	StateAuthoring    State = "authoring"
	StateAwaitingBurn State = "awaiting_burn"
	StateBurning      State = "burning"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Label returns the display form ("Awaiting Burn").
func (s State) Label() string {
	return textutil.Label(string(s))
}

// Resting reports whether no stage transition is pending in this state
// without user input.
func (s State) Resting() bool {
	switch s {
	case StateIdle, StateAwaitingBurn, StateDone, StateFailed:
		return true
	default:
		return false
	}
}

// JobStatus tracks one job of the current run.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// JobOutcome is the coordinator's record of one started job.
type JobOutcome struct {
	ID     string
	Kind   jobs.Kind
	Status JobStatus
	Output string
	Err    error
}

// Settings are the per-run encoding and naming choices.
type Settings struct {
	Encoder       encoding.Encoder
	Profile       encoding.Profile
	MenuDuration  float64
	ISOName       string
	MetaName      string
	MenuImageName string
	// GOOS selects the burn command; empty means the host platform.
	GOOS string
}

// SettingsFromConfig builds run settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, services.Wrap(services.ErrConfiguration, "pipeline", "settings", "config is nil", nil)
	}
	enc, err := encoding.ParseEncoder(cfg.Encoding.Encoder)
	if err != nil {
		return Settings{}, err
	}
	profile, err := encoding.ParseProfile(cfg.Encoding.Profile)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Encoder:       enc,
		Profile:       profile,
		MenuDuration:  cfg.Encoding.MenuDurationSeconds,
		ISOName:       cfg.Authoring.ISOName,
		MetaName:      cfg.Authoring.MetaName,
		MenuImageName: cfg.Authoring.MenuImageName,
		GOOS:          runtime.GOOS,
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	if s.MenuDuration <= 0 {
		return services.Wrap(services.ErrValidation, "pipeline", "settings", fmt.Sprintf("menu duration must be positive, got %v", s.MenuDuration), nil)
	}
	for name, value := range map[string]string{
		"iso name":        s.ISOName,
		"meta name":       s.MetaName,
		"menu image name": s.MenuImageName,
	} {
		if strings.TrimSpace(value) == "" {
			return services.Wrap(services.ErrValidation, "pipeline", "settings", name+" is empty", nil)
		}
	}
	return nil
}

// Tools resolves external executables. deps.Locator satisfies it.
type Tools interface {
	Locate(name string) (string, error)
}

// Launcher starts jobs. jobs.Runner satisfies it.
type Launcher interface {
	Start(ctx context.Context, job jobs.Job, sink jobs.Sink) string
}

// Recorder persists run records. history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// NotificationKind distinguishes job log lines from state changes.
type NotificationKind int

const (
	NotifyLog NotificationKind = iota
	NotifyState
)

// Notification is delivered to the Observer for every log line and state
// change. Job is empty for coordinator messages; Err is set on transitions
// to failed.
type Notification struct {
	Kind  NotificationKind
	RunID string
	Job   jobs.Kind
	Line  string
	State State
	Err   error
	Time  time.Time
}

// Observer receives notifications in order. It must not block for long; it
// may call Snapshot.
type Observer func(Notification)

package pipeline

import (
	"context"
	"errors"

	"bdmenu/internal/history"
	"bdmenu/internal/jobs"
	"bdmenu/internal/logging"
	"bdmenu/internal/services"
)

// Snapshot is a point-in-time copy of the run.
type Snapshot struct {
	RunID            string
	State            State
	VideoPath        string
	BackgroundPath   string
	MenuImagePath    string
	MenuVideoPath    string
	EncodedVideoPath string
	ISOPath          string
	Drive            string
	Jobs             []JobOutcome
	InFlight         int
	LastError        error
}

// ISOAvailable reports whether the burn stage may be entered.
func (s Snapshot) ISOAvailable() bool {
	return s.State == StateAwaitingBurn && s.ISOPath != ""
}

// Snapshot returns the current run state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	snap := Snapshot{
		RunID:            c.runID,
		State:            c.state,
		VideoPath:        c.run.video,
		BackgroundPath:   c.run.background,
		MenuImagePath:    c.run.menuImage,
		MenuVideoPath:    c.run.menuVideo,
		EncodedVideoPath: c.run.encodedVideo,
		ISOPath:          c.run.iso,
		Drive:            c.run.drive,
		InFlight:         c.running,
		LastError:        c.lastErr,
	}
	for _, kind := range []jobs.Kind{jobs.KindMenu, jobs.KindFeature, jobs.KindAuthoring, jobs.KindBurn} {
		for _, o := range c.jobs {
			if o.Kind == kind {
				snap.Jobs = append(snap.Jobs, *o)
			}
		}
	}
	return snap
}

// Wait blocks until the run rests with no job still executing, then returns
// the snapshot. The run's own failure is reported through Snapshot.LastError,
// not the returned error. Queued notifications reach the observer before Wait
// returns, so an observer must not call Wait.
func (c *Coordinator) Wait(ctx context.Context) (Snapshot, error) {
	for {
		c.mu.Lock()
		if c.state.Resting() && c.running == 0 {
			snap := c.snapshotLocked()
			c.mu.Unlock()
			c.drain()
			return snap, nil
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		}
	}
}

func (c *Coordinator) recordLocked() {
	if c.recorder == nil || c.runID == "" || c.state == StateIdle {
		return
	}
	run := history.Run{
		ID:               c.runID,
		State:            string(c.state),
		VideoPath:        c.run.video,
		BackgroundPath:   c.run.background,
		MenuVideoPath:    c.run.menuVideo,
		EncodedVideoPath: c.run.encodedVideo,
		ISOPath:          c.run.iso,
		Drive:            c.run.drive,
		CreatedAt:        c.createdAt,
		UpdatedAt:        c.now(),
	}
	if c.lastErr != nil {
		run.ErrorKind = services.Classify(c.lastErr)
		run.ErrorMessage = c.lastErr.Error()
	}
	if err := c.recorder.Record(c.runCtx, run); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.WarnWithContext(c.loggerLocked(), "failed to record run history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the state directory permissions"),
		)
	}
}

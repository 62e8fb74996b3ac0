package pipeline

import (
	"fmt"
	"path/filepath"

	"bdmenu/internal/authoring"
	"bdmenu/internal/burning"
	"bdmenu/internal/deps"
	"bdmenu/internal/encoding"
	"bdmenu/internal/jobs"
	"bdmenu/internal/logging"
	"bdmenu/internal/services"
)

// handleEvent is the jobs.Sink for every job the coordinator starts.
func (c *Coordinator) handleEvent(evt jobs.Event) {
	c.mu.Lock()
	c.applyEventLocked(evt)
	c.mu.Unlock()
	c.flush()
}

func (c *Coordinator) applyEventLocked(evt jobs.Event) {
	outcome, ok := c.jobs[evt.JobID]
	if !ok {
		c.logger.Debug("ignoring event from an earlier run",
			logging.String(logging.FieldJobID, evt.JobID),
			logging.String(logging.FieldJob, string(evt.Kind)),
			logging.String(logging.FieldEventType, "stale_job_event"),
		)
		return
	}
	if evt.Type.Terminal() {
		c.running--
		defer c.signalLocked()
	}
	switch evt.Type {
	case jobs.EventLog:
		c.notifyLocked(outcome.Kind, evt.Line)
	case jobs.EventSucceeded:
		outcome.Status = JobSucceeded
		outcome.Output = evt.Output
		c.onSuccessLocked(outcome)
	case jobs.EventFailed:
		outcome.Status = JobFailed
		outcome.Err = evt.Err
		c.onFailureLocked(outcome)
	}
}

func (c *Coordinator) onSuccessLocked(outcome *JobOutcome) {
	switch outcome.Kind {
	case jobs.KindMenu, jobs.KindFeature:
		if outcome.Kind == jobs.KindMenu {
			c.run.menuVideo = outcome.Output
		} else {
			c.run.encodedVideo = outcome.Output
		}
		if c.state != StateEncoding {
			c.notifyLocked(outcome.Kind, fmt.Sprintf("%s finished after the run %s; ignoring", outcome.Kind, c.state))
			return
		}
		if pending := c.pendingEncodesLocked(); len(pending) > 0 {
			c.notifyLocked(outcome.Kind, fmt.Sprintf("%s finished; waiting for %s", outcome.Kind, pending[0]))
			return
		}
		c.startAuthoringLocked()
	case jobs.KindAuthoring:
		if c.state != StateAuthoring {
			return
		}
		c.run.iso = outcome.Output
		c.notifyLocked(outcome.Kind, "disc image written to "+c.run.iso)
		c.setStateLocked(StateAwaitingBurn, nil)
	case jobs.KindBurn:
		if c.state != StateBurning {
			return
		}
		c.setStateLocked(StateDone, nil)
	}
}

func (c *Coordinator) onFailureLocked(outcome *JobOutcome) {
	expected := map[jobs.Kind]State{
		jobs.KindMenu:      StateEncoding,
		jobs.KindFeature:   StateEncoding,
		jobs.KindAuthoring: StateAuthoring,
		jobs.KindBurn:      StateBurning,
	}[outcome.Kind]
	if c.state != expected {
		c.notifyLocked(outcome.Kind, fmt.Sprintf("%s failed after the run %s; ignoring: %v", outcome.Kind, c.state, outcome.Err))
		return
	}
	c.failLocked(outcome.Err)
}

// pendingEncodesLocked lists first-stage jobs that have not succeeded yet.
func (c *Coordinator) pendingEncodesLocked() []jobs.Kind {
	done := map[jobs.Kind]bool{}
	for _, o := range c.jobs {
		if o.Status == JobSucceeded {
			done[o.Kind] = true
		}
	}
	var pending []jobs.Kind
	for _, kind := range []jobs.Kind{jobs.KindMenu, jobs.KindFeature} {
		if !done[kind] {
			pending = append(pending, kind)
		}
	}
	return pending
}

func (c *Coordinator) startAuthoringLocked() {
	c.setStateLocked(StateAuthoring, nil)

	list, err := authoring.BuildChapters(c.chapters, c.settings.MenuDuration)
	if err != nil {
		c.failLocked(err)
		return
	}
	metaPath := filepath.Join(c.run.outputDir, c.settings.MetaName)
	meta := authoring.Meta{
		MenuVideo:    c.run.menuVideo,
		FeatureVideo: c.run.encodedVideo,
		FPS:          encoding.BluRayFrameRate(c.settings.Profile.FPS),
		Chapters:     list,
	}
	if err := authoring.WriteMeta(metaPath, meta); err != nil {
		c.failLocked(err)
		return
	}
	c.notifyLocked(jobs.KindAuthoring, "wrote multiplexer configuration "+metaPath)

	tsmuxer, err := c.tools.Locate(deps.ToolTsMuxer)
	if err != nil {
		logging.WarnWithContext(c.loggerLocked(), "tsMuxeR not found", "tool_missing",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install tsMuxeR next to bdmenu, on PATH, or set [tools] tsmuxer"),
		)
		tsmuxer = ""
	}
	c.startJobLocked(authoring.Job{
		TsMuxer:    tsmuxer,
		MetaPath:   metaPath,
		OutputPath: filepath.Join(c.run.outputDir, c.settings.ISOName),
	})
}

func burnJob(iso, drive, goos string) jobs.Job {
	return burning.Job{ISOPath: iso, Drive: drive, GOOS: goos}
}

func (c *Coordinator) failLocked(err error) {
	if err == nil {
		err = services.Wrap(services.ErrExternalTool, "pipeline", string(c.state), "stage failed without error detail", nil)
	}
	c.lastErr = err
	logging.ErrorWithContext(c.loggerLocked(), "run failed", "run_failed",
		logging.String("stage", string(c.state)),
		logging.String("error_kind", services.Classify(err)),
		logging.Error(err),
	)
	c.setStateLocked(StateFailed, err)
}

func (c *Coordinator) setStateLocked(next State, err error) {
	prev := c.state
	c.state = next
	c.loggerLocked().Info("state changed",
		logging.String(logging.FieldEventType, "state_change"),
		logging.String(logging.FieldState, string(next)),
		logging.String("previous_state", string(prev)),
	)
	c.pending = append(c.pending, Notification{
		Kind:  NotifyState,
		RunID: c.runID,
		State: next,
		Err:   err,
		Time:  c.now(),
	})
	c.recordLocked()
	c.signalLocked()
}

func (c *Coordinator) notifyLocked(kind jobs.Kind, line string) {
	c.pending = append(c.pending, Notification{
		Kind:  NotifyLog,
		RunID: c.runID,
		Job:   kind,
		Line:  line,
		State: c.state,
		Time:  c.now(),
	})
}

// signalLocked wakes every Wait caller.
func (c *Coordinator) signalLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// flush delivers queued notifications. Only one goroutine dispatches at a
// time; a caller that finds dispatch busy leaves its notifications to the
// active dispatcher, which re-checks the queue before returning.
func (c *Coordinator) flush() {
	for {
		if !c.dispatchMu.TryLock() {
			return
		}
		c.deliverPending()
		c.dispatchMu.Unlock()

		c.mu.Lock()
		more := len(c.pending) > 0
		c.mu.Unlock()
		if !more {
			return
		}
	}
}

// drain blocks until the active dispatcher, if any, is done and the queue is
// empty.
func (c *Coordinator) drain() {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	c.deliverPending()
}

// deliverPending hands queued notifications to the observer. The caller holds
// dispatchMu.
func (c *Coordinator) deliverPending() {
	for {
		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		if c.observer != nil {
			for _, n := range batch {
				c.observer(n)
			}
		}
	}
}

package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"bdmenu/internal/logging"
	"bdmenu/internal/services"
)

// Runner launches jobs on a Pool.
type Runner struct {
	pool     *Pool
	exec     Executor
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
	inFlight atomic.Int64
}

// Option customizes a Runner.
type Option func(*Runner)

// WithExecutor swaps the process executor (tests use fakes).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithIDGenerator overrides job id generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRunner constructs a runner backed by pool.
func NewRunner(pool *Pool, logger *slog.Logger, opts ...Option) *Runner {
	if pool == nil {
		pool = NewPool(2)
	}
	r := &Runner{
		pool:   pool,
		exec:   CommandExecutor{},
		logger: logging.NewComponentLogger(logger, "jobs"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InFlight reports how many started jobs have not yet emitted a terminal event.
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Wait blocks until all started jobs have finished.
func (r *Runner) Wait() {
	r.pool.Wait()
}

// Start schedules job and returns its id immediately. Events are delivered to
// sink from the worker goroutine; exactly one terminal event is emitted.
func (r *Runner) Start(ctx context.Context, job Job, sink Sink) string {
	id := r.newID()
	kind := job.Kind()
	ctx = services.WithJob(ctx, string(kind))
	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldJobID, id))

	var once sync.Once
	r.inFlight.Add(1)
	emit := func(evt Event) {
		evt.JobID = id
		evt.Kind = kind
		evt.Time = r.now()
		if evt.Type.Terminal() {
			once.Do(func() {
				r.inFlight.Add(-1)
				if sink != nil {
					sink(evt)
				}
			})
			return
		}
		if sink != nil {
			sink(evt)
		}
	}

	r.pool.Go(ctx, func() {
		r.run(ctx, job, logger, emit)
	}, func(err error) {
		emit(Event{Type: EventFailed, Err: services.Wrap(services.ErrExternalTool, string(kind), "schedule", "job never started", err)})
	})
	return id
}

func (r *Runner) run(ctx context.Context, job Job, logger *slog.Logger, emit func(Event)) {
	report := &reporter{logger: logger, emit: emit}
	started := r.now()
	logger.Info("job started", logging.String(logging.FieldEventType, "job_start"))

	if p, ok := job.(Preparer); ok {
		if err := p.Prepare(ctx, report); err != nil {
			r.finish(job, report, logger, emit, Command{}, started, err)
			return
		}
	}

	cmd, err := job.Command()
	if err != nil {
		r.finish(job, report, logger, emit, cmd, started, err)
		return
	}
	logger.Debug("launching process", logging.String("command", cmd.String()))
	report.Info("$ " + cmd.String())

	err = r.exec.Run(ctx, cmd.Binary, cmd.Args, func(line string) {
		logger.Debug(line, logging.String(logging.FieldEventType, "job_output"))
		emit(Event{Type: EventLog, Line: line})
	})
	r.finish(job, report, logger, emit, cmd, started, err)
}

func (r *Runner) finish(job Job, report *reporter, logger *slog.Logger, emit func(Event), cmd Command, started time.Time, err error) {
	if f, ok := job.(Finalizer); ok {
		f.Finalize(report)
	}
	elapsed := logging.Duration("elapsed", r.now().Sub(started).Round(time.Millisecond))
	if err != nil {
		logging.ErrorWithContext(logger, "job failed", "job_failed",
			logging.Error(err),
			elapsed,
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		emit(Event{Type: EventFailed, Err: err})
		return
	}
	logger.Info("job succeeded",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.String("output", cmd.Output),
		elapsed,
	)
	emit(Event{Type: EventSucceeded, Output: cmd.Output})
}

func hintFor(err error) string {
	switch services.Classify(err) {
	case services.KindToolMissing:
		return "install the tool next to bdmenu, on PATH, or set it under [tools]"
	case services.KindValidation:
		return "fix the input and retry"
	default:
		return "inspect the job log tail for the tool's own error"
	}
}

type reporter struct {
	logger *slog.Logger
	emit   func(Event)
}

func (r *reporter) Info(msg string) {
	r.logger.Debug(msg)
	r.emit(Event{Type: EventLog, Line: msg})
}

func (r *reporter) Warn(msg, eventType, hint string) {
	logging.WarnWithContext(r.logger, msg, eventType, logging.String(logging.FieldErrorHint, hint))
	r.emit(Event{Type: EventLog, Line: "warning: " + msg})
}

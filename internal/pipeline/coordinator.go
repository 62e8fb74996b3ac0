package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bdmenu/internal/deps"
	"bdmenu/internal/encoding"
	"bdmenu/internal/fileutil"
	"bdmenu/internal/jobs"
	"bdmenu/internal/layout"
	"bdmenu/internal/logging"
	"bdmenu/internal/render"
	"bdmenu/internal/services"
)

// Deps are the collaborators a Coordinator cannot run without.
type Deps struct {
	Tools    Tools
	Launcher Launcher
	Renderer render.Renderer
	Logger   *slog.Logger
}

// Option configures optional Coordinator behavior.
type Option func(*Coordinator)

// WithRecorder persists a run record on every state change.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithObserver registers the notification callback.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithRunIDGenerator overrides run id generation.
func WithRunIDGenerator(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newRunID = fn
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.now = fn
		}
	}
}

// Coordinator owns the per-run pipeline state. The Session owns chapters and
// canvas items; the coordinator reads it only inside Author.
type Coordinator struct {
	session  *layout.Session
	settings Settings
	tools    Tools
	launcher Launcher
	renderer render.Renderer
	recorder Recorder
	observer Observer
	logger   *slog.Logger
	newRunID func() string
	now      func() time.Time

	mu        sync.Mutex
	state     State
	runID     string
	runCtx    context.Context
	createdAt time.Time
	run       runPaths
	chapters  []string
	jobs      map[string]*JobOutcome
	running   int
	lastErr   error
	changed   chan struct{}

	dispatchMu sync.Mutex
	pending    []Notification
}

type runPaths struct {
	video        string
	background   string
	outputDir    string
	menuImage    string
	menuVideo    string
	encodedVideo string
	iso          string
	drive        string
}

// New constructs a coordinator in the idle state.
func New(session *layout.Session, settings Settings, d Deps, opts ...Option) (*Coordinator, error) {
	if session == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "session is nil", nil)
	}
	if d.Tools == nil || d.Launcher == nil || d.Renderer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "tools, launcher and renderer are required", nil)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	c := &Coordinator{
		session:  session,
		settings: settings,
		tools:    d.Tools,
		launcher: d.Launcher,
		renderer: d.Renderer,
		logger:   logging.NewComponentLogger(d.Logger, "pipeline"),
		newRunID: uuid.NewString,
		now:      time.Now,
		state:    StateIdle,
		runCtx:   context.Background(),
		jobs:     make(map[string]*JobOutcome),
		changed:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Author starts a run: it re-arms the coordinator, renders the menu still
// and launches the menu and feature encodes. It returns once both encodes
// are scheduled; use Wait to block until the run rests.
func (c *Coordinator) Author(ctx context.Context) error {
	c.mu.Lock()
	if err := c.rearmLocked(ctx); err != nil {
		c.mu.Unlock()
		c.flush()
		return err
	}
	video := strings.TrimSpace(c.session.Video)
	background := strings.TrimSpace(c.session.Background)
	if video == "" || background == "" {
		err := services.Wrap(services.ErrValidation, "pipeline", "author", "both a source video and a background image are required", nil)
		c.lastErr = err
		c.mu.Unlock()
		c.flush()
		return err
	}
	c.run.video = video
	c.run.background = background
	c.run.outputDir = filepath.Dir(video)
	c.run.menuImage = filepath.Join(c.run.outputDir, c.settings.MenuImageName)
	c.chapters = c.session.Chapters.EffectiveOrder()
	doc := c.session.Document()
	runID := c.runID
	menuImage := c.run.menuImage
	c.setStateLocked(StateRendering, nil)
	c.mu.Unlock()
	c.flush()

	renderErr := c.renderer.Render(ctx, doc, menuImage)

	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		c.flush()
	}()
	if c.runID != runID || c.state != StateRendering {
		return services.Wrap(services.ErrValidation, "pipeline", "author", "run was superseded while rendering", nil)
	}
	if renderErr != nil {
		err := services.Wrap(services.ErrIO, "pipeline", "render menu image", menuImage, renderErr)
		c.failLocked(err)
		return err
	}
	c.notifyLocked("", "menu image saved to "+menuImage)
	c.startEncodesLocked()
	return nil
}

// rearmLocked clears the previous run's outputs and returns to idle.
func (c *Coordinator) rearmLocked(ctx context.Context) error {
	switch c.state {
	case StateIdle, StateDone, StateFailed, StateAwaitingBurn:
	default:
		return services.Wrap(services.ErrValidation, "pipeline", "author", fmt.Sprintf("a run is already %s", c.state), nil)
	}
	if c.running > 0 {
		return services.Wrap(services.ErrValidation, "pipeline", "author",
			fmt.Sprintf("%d job(s) from the previous run are still executing", c.running), nil)
	}
	c.runID = c.newRunID()
	c.runCtx = context.WithoutCancel(services.WithRunID(ctx, c.runID))
	c.createdAt = c.now()
	c.run = runPaths{}
	c.chapters = nil
	c.jobs = make(map[string]*JobOutcome)
	c.lastErr = nil
	if c.state != StateIdle {
		c.setStateLocked(StateIdle, nil)
	}
	return nil
}

func (c *Coordinator) startEncodesLocked() {
	ffmpeg, err := c.tools.Locate(deps.ToolFFmpeg)
	if err != nil {
		logging.WarnWithContext(c.loggerLocked(), "ffmpeg not found", "tool_missing",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install ffmpeg next to bdmenu, on PATH, or set [tools] ffmpeg"),
		)
		ffmpeg = ""
	}
	c.setStateLocked(StateEncoding, nil)
	c.startJobLocked(encoding.MenuJob{
		FFmpeg:    ffmpeg,
		ImagePath: c.run.menuImage,
		Duration:  c.settings.MenuDuration,
		Profile:   c.settings.Profile,
	})
	c.startJobLocked(encoding.FeatureJob{
		FFmpeg:    ffmpeg,
		VideoPath: c.run.video,
		Encoder:   c.settings.Encoder,
		Profile:   c.settings.Profile,
	})
}

func (c *Coordinator) startJobLocked(job jobs.Job) {
	c.running++
	id := c.launcher.Start(c.runCtx, job, c.handleEvent)
	c.jobs[id] = &JobOutcome{ID: id, Kind: job.Kind(), Status: JobRunning}
	c.loggerLocked().Info("job scheduled",
		logging.String(logging.FieldEventType, "job_scheduled"),
		logging.String(logging.FieldJob, string(job.Kind())),
		logging.String(logging.FieldJobID, id),
	)
}

// Burn writes the authored image to drive. It is only valid while the run
// awaits a burn.
func (c *Coordinator) Burn(ctx context.Context, drive string) error {
	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		c.flush()
	}()
	if c.state != StateAwaitingBurn {
		return services.Wrap(services.ErrValidation, "pipeline", "burn", fmt.Sprintf("no disc image is ready (state %s)", c.state), nil)
	}
	drive = strings.TrimSpace(drive)
	if drive == "" {
		return services.Wrap(services.ErrValidation, "pipeline", "burn", "no drive selected", nil)
	}
	if !fileutil.Exists(c.run.iso) {
		return services.Wrap(services.ErrValidation, "pipeline", "burn", fmt.Sprintf("disc image %q no longer exists", c.run.iso), nil)
	}
	if ctx != nil {
		c.runCtx = context.WithoutCancel(services.WithRunID(ctx, c.runID))
	}
	c.run.drive = drive
	c.setStateLocked(StateBurning, nil)
	c.notifyLocked("", fmt.Sprintf("burning %s to drive %s", c.run.iso, drive))
	c.startJobLocked(burnJob(c.run.iso, drive, c.settings.GOOS))
	return nil
}

func (c *Coordinator) loggerLocked() *slog.Logger {
	return logging.WithContext(c.runCtx, c.logger)
}

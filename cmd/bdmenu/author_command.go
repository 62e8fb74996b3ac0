package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bdmenu/internal/config"
	"bdmenu/internal/deps"
	"bdmenu/internal/encoding"
	"bdmenu/internal/fileutil"
	"bdmenu/internal/jobs"
	"bdmenu/internal/layout"
	"bdmenu/internal/logging"
	"bdmenu/internal/notifications"
	"bdmenu/internal/pipeline"
	"bdmenu/internal/preflight"
	"bdmenu/internal/render"
	"bdmenu/internal/services"
	"bdmenu/internal/workspace"
)

type authorOptions struct {
	video        string
	encoder      string
	profile      string
	menuDuration float64
	burn         bool
	drive        string
}

func newAuthorCommand(ctx *commandContext) *cobra.Command {
	var opts authorOptions

	cmd := &cobra.Command{
		Use:   "author LAYOUT",
		Short: "Render, encode and multiplex a Blu-ray image",
		Long: "Render the menu still from the layout, encode the menu loop and the feature " +
			"concurrently, then multiplex both into a disc image next to the video. " +
			"With --burn the image is written to --drive afterwards.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthor(cmd, ctx, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.video, "video", "", "Source feature video")
	cmd.Flags().StringVar(&opts.encoder, "encoder", "", "Feature encoder (libx264, h264_nvenc, h264_amf, h264_qsv)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Output profile WxH:fps (empty keeps the source)")
	cmd.Flags().Float64Var(&opts.menuDuration, "menu-duration", 0, "Menu loop length in seconds")
	cmd.Flags().BoolVar(&opts.burn, "burn", false, "Burn the image once authoring succeeds")
	cmd.Flags().StringVar(&opts.drive, "drive", "", "Drive to burn to (defaults to [burning] drive)")
	return cmd
}

func runAuthor(cmd *cobra.Command, ctx *commandContext, layoutPath string, opts authorOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	runCtx := commandCtx(cmd)
	out := cmd.OutOrStdout()

	session, err := layout.Load(layoutPath, ctx.layoutDefaults())
	if err != nil {
		return err
	}
	video, err := filepath.Abs(strings.TrimSpace(opts.video))
	if err != nil || strings.TrimSpace(opts.video) == "" || !fileutil.Exists(video) {
		return services.Wrap(services.ErrValidation, "author", "resolve video", fmt.Sprintf("source video %q does not exist", opts.video), err)
	}
	session.Video = video

	settings, err := authorSettings(cmd, cfg, opts)
	if err != nil {
		return err
	}
	drive := strings.TrimSpace(opts.drive)
	if drive == "" {
		drive = cfg.Burning.Drive
	}
	if opts.burn && drive == "" {
		return services.Wrap(services.ErrValidation, "author", "burn", "--burn needs --drive or [burning] drive", nil)
	}

	locator := deps.LocatorFromConfig(cfg)
	outputDir := filepath.Dir(video)
	if err := requirePreflight(out, cfg, locator, outputDir); err != nil {
		return err
	}

	lock, err := workspace.Acquire(outputDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	runner := jobs.NewRunner(jobs.NewPool(cfg.Workers.MaxConcurrentJobs), logger)
	defer runner.Wait()

	colorize := shouldColorize(out)
	options := []pipeline.Option{
		pipeline.WithObserver(func(n pipeline.Notification) {
			fmt.Fprintln(out, renderNotification(n, colorize))
		}),
	}
	if store, err := ctx.openHistory(); err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "runs will not be listed by `bdmenu runs`"),
		)
	} else {
		defer store.Close()
		options = append(options, pipeline.WithRecorder(store))
	}

	coord, err := pipeline.New(session, settings, pipeline.Deps{
		Tools:    locator,
		Launcher: runner,
		Renderer: render.BackgroundRenderer{},
		Logger:   logger,
	}, options...)
	if err != nil {
		return err
	}

	notifier := notifications.NewService(cfg)
	notify := func(event notifications.Event, snap pipeline.Snapshot) {
		payload := notifications.Payload{RunID: snap.RunID, Video: video, ISO: snap.ISOPath, Drive: snap.Drive, Err: snap.LastError}
		if err := notifier.Publish(runCtx, event, payload); err != nil {
			logging.WarnWithContext(logger, "run notification failed", "notification_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check [notifications] ntfy_topic"),
			)
		}
	}

	if err := coord.Author(runCtx); err != nil {
		return err
	}
	snap, err := coord.Wait(runCtx)
	if err != nil {
		return err
	}
	if snap.State != pipeline.StateAwaitingBurn {
		notify(notifications.EventRunFailed, snap)
		return runFailure(snap)
	}
	fmt.Fprintf(out, "Disc image: %s (%s)\n", snap.ISOPath, fileSize(snap.ISOPath))
	notify(notifications.EventImageReady, snap)
	if !opts.burn {
		return nil
	}

	if err := coord.Burn(runCtx, drive); err != nil {
		return err
	}
	snap, err = coord.Wait(runCtx)
	if err != nil {
		return err
	}
	if snap.State != pipeline.StateDone {
		notify(notifications.EventRunFailed, snap)
		return runFailure(snap)
	}
	fmt.Fprintf(out, "Burned %s to %s\n", snap.ISOPath, snap.Drive)
	notify(notifications.EventBurnCompleted, snap)
	return nil
}

// authorSettings applies command-line overrides on top of the configuration.
func authorSettings(cmd *cobra.Command, cfg *config.Config, opts authorOptions) (pipeline.Settings, error) {
	settings, err := pipeline.SettingsFromConfig(cfg)
	if err != nil {
		return pipeline.Settings{}, err
	}
	if cmd.Flags().Changed("encoder") {
		enc, err := encoding.ParseEncoder(opts.encoder)
		if err != nil {
			return pipeline.Settings{}, err
		}
		settings.Encoder = enc
	}
	if cmd.Flags().Changed("profile") {
		profile, err := encoding.ParseProfile(opts.profile)
		if err != nil {
			return pipeline.Settings{}, err
		}
		settings.Profile = profile
	}
	if cmd.Flags().Changed("menu-duration") {
		if opts.menuDuration <= 0 {
			return pipeline.Settings{}, services.Wrap(services.ErrValidation, "author", "settings", "--menu-duration must be positive", nil)
		}
		settings.MenuDuration = opts.menuDuration
	}
	return settings, nil
}

// requirePreflight prints failing checks and refuses to start a run.
func requirePreflight(out io.Writer, cfg *config.Config, locator *deps.Locator, outputDir string) error {
	failed := preflight.Failed(preflight.RunAll(cfg, locator, outputDir))
	if len(failed) == 0 {
		return nil
	}
	colorize := shouldColorize(out)
	names := make([]string, 0, len(failed))
	marker := services.ErrValidation
	for _, r := range failed {
		fmt.Fprintln(out, renderStatusLine(r.Name, statusError, r.Detail, colorize))
		names = append(names, r.Name)
		if r.Name == "FFmpeg" || r.Name == "tsMuxeR" {
			marker = services.ErrToolMissing
		}
	}
	return services.Wrap(marker, "author", "preflight", "failed checks: "+strings.Join(names, ", "), nil)
}

func runFailure(snap pipeline.Snapshot) error {
	if snap.LastError != nil {
		return fmt.Errorf("run %s %s: %w", snap.RunID, snap.State, snap.LastError)
	}
	return fmt.Errorf("run %s ended in state %s", snap.RunID, snap.State)
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "size unknown"
	}
	return humanize.Bytes(uint64(info.Size()))
}

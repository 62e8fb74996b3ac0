package config

const (
	defaultConfigPath       = "~/.config/bdmenu/config.toml"
	defaultLogDir           = "~/.local/share/bdmenu/logs"
	defaultStateDirFallback = "~/.local/state/bdmenu"
	defaultEncoder          = "libx264"
	defaultMenuDuration     = 10.0
	defaultISOName          = "BDMV_MENU.iso"
	defaultMetaName         = "tsmuxer.meta"
	defaultMenuImageName    = "menu_image.png"
	defaultTitleText        = "My Blu-ray Title"
	defaultTitleFont        = "Impact"
	defaultTitleSize        = 72
	defaultTitleColor       = "#ffff00"
	defaultButtonFont       = "Arial"
	defaultButtonSize       = 50
	defaultButtonColor      = "#ffffff"
	defaultButtonSpacing    = 70
	defaultButtonWidth      = 400
	defaultButtonHeight     = 60
	defaultMaxJobs          = 2
	defaultNtfyTimeout      = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir(),
		},
		Encoding: Encoding{
			Encoder:             defaultEncoder,
			MenuDurationSeconds: defaultMenuDuration,
		},
		Authoring: Authoring{
			ISOName:       defaultISOName,
			MetaName:      defaultMetaName,
			MenuImageName: defaultMenuImageName,
		},
		Layout: Layout{
			TitleText: defaultTitleText,
			TitleX:    100,
			TitleY:    50,
			Title: TextDefaults{
				FontFamily: defaultTitleFont,
				FontSize:   defaultTitleSize,
				FontColor:  defaultTitleColor,
			},
			Button: TextDefaults{
				FontFamily: defaultButtonFont,
				FontSize:   defaultButtonSize,
				FontColor:  defaultButtonColor,
			},
			ButtonX:       100,
			ButtonY:       150,
			ButtonSpacing: defaultButtonSpacing,
			ButtonWidth:   defaultButtonWidth,
			ButtonHeight:  defaultButtonHeight,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeout,
		},
		Workers: Workers{
			MaxConcurrentJobs: defaultMaxJobs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultConfigPath    = "~/.config/leetdeck/config.toml"
	defaultDatabasePath  = "~/.local/share/leetdeck/problems.db"
	defaultLogDir        = "~/.local/share/leetdeck/logs"
	defaultOutputDir     = "~/.local/share/leetdeck/output"
	defaultFrontTemplate = "~/.config/leetdeck/templates/front.html"
	defaultBackTemplate  = "~/.config/leetdeck/templates/back.html"
	defaultCSSTemplate   = "~/.config/leetdeck/templates/style.css"
	defaultDeckName      = "Leetcode"
	defaultRenderWorkers = 1
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database: defaultDatabasePath,
			LogDir:   defaultLogDir,
		},
		Deck: Deck{
			DefaultName: defaultDeckName,
		},
		Anki: Anki{
			Front:  defaultFrontTemplate,
			Back:   defaultBackTemplate,
			CSS:    defaultCSSTemplate,
			Output: defaultOutputDir,
		},
		Render: Render{
			Workers: defaultRenderWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

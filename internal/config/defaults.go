package config

const (
	defaultConfigPath      = "~/.config/riplogcheck/config.toml"
	defaultDataDir         = "~/.local/share/riplogcheck"
	defaultLogDir          = "~/.local/share/riplogcheck/logs"
	defaultHistoryFile     = "history.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultProfile         = "eac"
	defaultHistoryEnabled  = true
	defaultBatchConcurrent = 4
	defaultMaxFileBytes    = 16 << 20
)

// Default returns a Config populated with repository defaults. The history
// path is derived from the data directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Checklist: Checklist{
			Profile: defaultProfile,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Batch: Batch{
			Concurrency:  defaultBatchConcurrent,
			MaxFileBytes: defaultMaxFileBytes,
		},
	}
}

package config

const (
	defaultAudioDir    = "~/.local/share/parrot/audio"
	defaultLogDir      = "~/.local/share/parrot/logs"
	defaultAudioFormat = "mp3"
	defaultDelimiter   = "comma"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLedgerPath  = "~/.local/share/parrot/ledger.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir: defaultAudioDir,
			LogDir:   defaultLogDir,
		},
		Audio: Audio{
			Format: defaultAudioFormat,
		},
		Output: Output{
			Delimiter: defaultDelimiter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Ledger: Ledger{
			Enabled: true,
			Path:    defaultLedgerPath,
		},
	}
}

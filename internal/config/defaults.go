package config

const (
	defaultLogDir                = "~/.local/share/cubby/logs"
	defaultLogRetentionDays      = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultSnifferBinary         = "file"
	defaultSnifferTimeoutSeconds = 5
	defaultWatchSettleMS         = 2000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Sniffer: Sniffer{
			Enabled:        true,
			Binary:         defaultSnifferBinary,
			TimeoutSeconds: defaultSnifferTimeoutSeconds,
		},
		Organize: Organize{},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Watch: Watch{
			SettleMS: defaultWatchSettleMS,
		},
	}
}

package config

const (
	defaultOutputDir = "~/lyrics"
	defaultCacheDir  = "~/.local/share/lyrasync/cache"
	defaultLogDir    = "~/.local/share/lyrasync/logs"

	defaultOutputFormat = "lrc"
	defaultLRCHeader    = true

	defaultValidRatio       = 0.7
	defaultScaleTolerance   = 0.25
	defaultActivityWeight   = 0.22
	defaultEmphasisExponent = 1.25

	defaultStoreEnabled   = true
	defaultStoreMaxTracks = 200

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  defaultCacheDir,
			LogDir:    defaultLogDir,
		},
		Output: Output{
			Format:    defaultOutputFormat,
			LRCHeader: defaultLRCHeader,
		},
		Timing: Timing{
			ValidRatio:       defaultValidRatio,
			ScaleTolerance:   defaultScaleTolerance,
			ActivityWeight:   defaultActivityWeight,
			EmphasisExponent: defaultEmphasisExponent,
		},
		Store: Store{
			Enabled:   defaultStoreEnabled,
			MaxTracks: defaultStoreMaxTracks,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

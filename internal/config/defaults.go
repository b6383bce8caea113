package config

const (
	defaultCacheDir              = "~/.cache/cuemark"
	defaultLogDir                = "~/.local/share/cuemark/logs"
	defaultPythonPath            = "python3"
	defaultBridgeScript          = "python/resolve_bridge.py"
	defaultBridgeTimeoutSeconds  = 120
	defaultTrackType             = "audio"
	defaultTrackIndex            = 1
	defaultMarkBeats             = false
	defaultMarkDownbeats         = true
	defaultCacheEnabled          = true
	defaultBeatCachePath         = "~/.cache/cuemark/beats.db"
	defaultLLMProvider           = "openai"
	defaultLLMModel              = "gpt-4o"
	defaultLLMTimeoutSeconds     = 60
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Resolve: Resolve{
			PythonPath:     defaultPythonPath,
			BridgeScript:   defaultBridgeScript,
			TimeoutSeconds: defaultBridgeTimeoutSeconds,
		},
		Beats: Beats{
			TrackType:     defaultTrackType,
			TrackIndex:    defaultTrackIndex,
			MarkBeats:     defaultMarkBeats,
			MarkDownbeats: defaultMarkDownbeats,
		},
		Cache: Cache{
			Enabled: defaultCacheEnabled,
			Path:    defaultBeatCachePath,
		},
		LLM: LLM{
			Provider:       defaultLLMProvider,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultServerURL            = "http://localhost:8080"
	defaultServerTimeoutSeconds = 30
	defaultDBPath               = "~/.local/share/writersroom/client.db"
	defaultDebounceMs           = 1500
	defaultMaxWaitMs            = 5000
	defaultMaxRetries           = 3
	defaultQueueMaxRetries      = 3
	defaultProbeIntervalSeconds = 15
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			TimeoutSeconds: defaultServerTimeoutSeconds,
		},
		Storage: Storage{
			DBPath: defaultDBPath,
		},
		Sync: Sync{
			DebounceMs:           defaultDebounceMs,
			MaxWaitMs:            defaultMaxWaitMs,
			MaxRetries:           defaultMaxRetries,
			QueueMaxRetries:      defaultQueueMaxRetries,
			ProbeIntervalSeconds: defaultProbeIntervalSeconds,
		},
		Log: Log{
			Level: defaultLogLevel,
		},
	}
}

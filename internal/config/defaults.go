package config

import (
	_ "embed"
)

//go:embed defaults/server.yaml
var defaultServerYAML []byte

// Default returns the hardcoded default configuration, used as the final
// fallback when no config file is found and the embedded YAML fails to
// parse.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":3000",
			StaticDir:      "public",
			CORSOrigin:     "*",
			ClientIPHeader: "",
			Development:    false,
		},
		Submission: SubmissionConfig{
			Secret:        "",
			WindowSeconds: 30,
		},
		RateLimit: RateLimitConfig{
			SubmitPerMinute: 2,
			FetchPerMinute:  60,
		},
		Store: StoreConfig{
			Path:           "~/.bounce/scores.db",
			TimeoutSeconds: 5,
		},
	}
}

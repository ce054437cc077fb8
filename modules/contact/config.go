package contact

import "time"

// Config holds the web surface settings.
type Config struct {
	SessionTTL   time.Duration `env:"CONTACT_SESSION_TTL" envDefault:"30m"`
	ReapInterval time.Duration `env:"CONTACT_REAP_INTERVAL" envDefault:"1m"`
	// Patches buffered per open stream before a slow browser is dropped.
	StreamBuffer int    `env:"CONTACT_STREAM_BUFFER" envDefault:"64"`
	DatastarURL  string `env:"CONTACT_DATASTAR_URL" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		SessionTTL:   30 * time.Minute,
		ReapInterval: time.Minute,
		StreamBuffer: 64,
		DatastarURL:  "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js",
	}
}

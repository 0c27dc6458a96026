package instrumentation

import "os"

// Config holds the configuration for metrics instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: inboxgate).
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true).
	// Set INSTRUMENTATION_ENABLED=false to disable.
	Enabled bool
}

// DefaultConfig returns the instrumentation configuration, honoring
// environment overrides.
func DefaultConfig() Config {
	cfg := Config{
		ServiceName:    "inboxgate",
		ServiceVersion: "dev",
		Enabled:        true,
	}

	if v := os.Getenv("INSTRUMENTATION_ENABLED"); v == "false" {
		cfg.Enabled = false
	}
	if v := os.Getenv("INSTRUMENTATION_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}

	return cfg
}

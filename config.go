package taskgate

import (
	"errors"
	"time"
)

// Config groups the tunables of a Session. Zero value is not usable;
// start from defaultConfig via New and override through Builder.
//
// Credential persistence horizons are not configured here: they belong
// to the token.Repository the session is built with (token.WithAccessTTL).
type Config struct {
	Permission PermissionConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
PERMISSION CONFIG
====================================
*/

// PermissionConfig controls the bounded permission fetch.
type PermissionConfig struct {
	// FetchTimeout bounds FetchPermissionSet; on expiry the fixed
	// default set is applied and the in-flight request is cancelled.
	FetchTimeout time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events under backpressure instead of blocking
	// the emitting operation.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-core counters.
type MetricsConfig struct {
	Enabled bool
	// EnableLatencyHistograms additionally records guard evaluation
	// latency buckets.
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Permission: PermissionConfig{
			FetchTimeout: 3 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config holds only value fields today; the clone point stays so
	// reference fields added later cannot alias builder state.
	return cfg
}

// Validate rejects configurations the Session cannot run with.
func (c Config) Validate() error {
	if c.Permission.FetchTimeout <= 0 {
		return errors.New("Permission.FetchTimeout must be positive")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	return nil
}

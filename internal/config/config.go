// Package config handles tip's runtime configuration using Viper.
//
// tip has no config file: every tunable is an environment variable under
// the TIP_ prefix, falling back to the spec's built-in defaults. Deriving
// the timing constants §4.1/§4.4/§4.5 describe as fixed numbers from a
// Config rather than hardcoding them keeps them in one place and
// overridable for testing, the same role Viper plays for the teacher's
// worker tunables.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultEscapeTimeout is how long the reader waits for a follow-up
	// byte after a bare ESC before emitting Escape(Timeout) (§4.1).
	DefaultEscapeTimeout = 50 * time.Millisecond
	// DefaultRedrawThrottle bounds how often the redraw throttler emits a
	// Redraw event regardless of ping rate (§4.5, §5).
	DefaultRedrawThrottle = 30 * time.Millisecond
	// DefaultChunkSize is how many bytes the supervisor reads from a
	// child's stdout/stderr pipes at a time (§4.4).
	DefaultChunkSize = 8 * 1024
)

// Config holds tip's runtime configuration, backed entirely by environment
// variables under the TIP_ prefix.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from the environment, falling back to the
// spec's defaults for anything unset.
func Load() *Config {
	v := viper.New()

	v.SetEnvPrefix("TIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// Debug reports whether TIP_DEBUG=true is set, which disables entering and
// leaving the alternate screen (§6).
func (c *Config) Debug() bool {
	return strings.EqualFold(strings.TrimSpace(c.v.GetString("debug")), "true")
}

// EscapeTimeout returns TIP_ESCAPE_TIMEOUT, defaulting to
// DefaultEscapeTimeout.
func (c *Config) EscapeTimeout() time.Duration {
	return c.parseDuration("escape_timeout", DefaultEscapeTimeout)
}

// RedrawThrottle returns TIP_REDRAW_THROTTLE, defaulting to
// DefaultRedrawThrottle.
func (c *Config) RedrawThrottle() time.Duration {
	return c.parseDuration("redraw_throttle", DefaultRedrawThrottle)
}

// ChunkSize returns TIP_CHUNK_SIZE in bytes, defaulting to
// DefaultChunkSize.
func (c *Config) ChunkSize() int {
	raw := c.v.GetString("chunk_size")
	if raw == "" {
		return DefaultChunkSize
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultChunkSize
	}

	return n
}

// parseDuration reads a config key and interprets it as a Go duration
// string (e.g. "50ms", "1s"), falling back to fallback when unset or
// invalid.
func (c *Config) parseDuration(key string, fallback time.Duration) time.Duration {
	raw := c.v.GetString(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

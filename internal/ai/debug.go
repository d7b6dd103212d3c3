package ai

import "sync/atomic"

// debugEnabled gates the per-tick Debug logging. Per-tick slog calls are
// cheap to skip but expensive to format, so the flag is checked first.
var debugEnabled atomic.Bool

// EnableDebugLogging toggles verbose AI logging. Set once at startup from
// the configured log level.
func EnableDebugLogging(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled reports whether verbose AI logging is on.
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}

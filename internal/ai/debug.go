package ai

import "sync/atomic"

// debugLoggingEnabled gates per-decision debug logs (target picks, route trimming).
// Checked on hot paths instead of asking the slog handler for its level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles AI decision logging.
// Called from main after the log level is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI decision logging is on.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("target selected", "npc", self.ID, "target", c.ID)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

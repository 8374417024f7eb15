// Package logging provides structured logging utilities for slurmtool.
//
// # Overview
//
// This package wraps the standard library slog package with slurmtool
// defaults: JSON output on stderr, environment-based log level configuration,
// module/version context injection and source locations for debug logs.
// Standard output is reserved for the resource table, so diagnostics about
// unreachable or unparseable nodes never interleave with rendered rows.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages
//   - WARN/WARNING: Potentially problematic situations (default for the CLI)
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("slurmtool", version, "warn")
//	    slog.Warn("node detail unparseable", "node", "gpu01")
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable is read by SetDefaultStructuredLogger:
//
//	LOG_LEVEL=debug slurmtool --all
//
// # Output Format
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "node detail unparseable",
//	    "module": "slurmtool",
//	    "version": "v1.0.0",
//	    "node": "down01"
//	}
package logging

// Package errors provides structured error types for better observability
// and programmatic error handling across slurmtool.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeSourceUnavailable,
//	    "failed to query node detail",
//	    cause,
//	    map[string]any{
//	        "command": "scontrol",
//	        "node":    nodeName,
//	    },
//	)
//
// CodeOf recovers the classification from anywhere in a wrapped chain:
//
//	if errors.CodeOf(err) == errors.ErrCodeUnparseableDetail {
//	    // skip the row
//	}
package errors

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnparseableDetail, "missing CfgTRES")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnparseableDetail {
		t.Errorf("expected code %s, got %s", ErrCodeUnparseableDetail, err.Code)
	}
	if err.Message != "missing CfgTRES" {
		t.Errorf("expected message 'missing CfgTRES', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeSourceUnavailable, "scontrol failed", cause)

	if err.Code != ErrCodeSourceUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeSourceUnavailable, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"command": "scontrol",
		"node":    "gpu01",
	}

	err := WrapWithContext(ErrCodeTimeout, "detail query failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["command"] != "scontrol" {
		t.Errorf("expected command to be scontrol")
	}
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeMalformedField, "bad token", map[string]any{"token": "cpu"})
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
	if err.Context["token"] != "cpu" {
		t.Errorf("expected token context, got %v", err.Context)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeUnparseableDetail, "missing Partitions"),
			expected: "[UNPARSEABLE_DETAIL] missing Partitions",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeMalformedField, "invalid cpu", errors.New("not a number")),
			expected: "[MALFORMED_FIELD] invalid cpu: not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain", errors.New("plain"), ""},
		{"direct", New(ErrCodeMalformedField, "x"), ErrCodeMalformedField},
		{"wrapped by fmt", fmt.Errorf("node gpu01: %w", New(ErrCodeUnparseableDetail, "x")), ErrCodeUnparseableDetail},
		{"outermost wins", Wrap(ErrCodeMalformedField, "outer", New(ErrCodeSourceUnavailable, "inner")), ErrCodeMalformedField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeSourceUnavailable,
		ErrCodeUnparseableDetail,
		ErrCodeMalformedField,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDimensionMismatch, "beside: heights differ (%d vs %d)", 2, 3)

	if err.Code != ErrCodeDimensionMismatch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDimensionMismatch)
	}

	if err.Message != "beside: heights differ (2 vs 3)" {
		t.Errorf("Message = %v, want %v", err.Message, "beside: heights differ (2 vs 3)")
	}

	expected := "DIMENSION_MISMATCH: beside: heights differ (2 vs 3)"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidProfile, cause, "load ansatz profile")

	if err.Code != ErrCodeInvalidProfile {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidProfile)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmptyComposition, "test"),
			code:     ErrCodeEmptyComposition,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmptyComposition, "test"),
			code:     ErrCodeDimensionMismatch,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidNotation, New(ErrCodeEmptyComposition, "inner"), "outer"),
			code:     ErrCodeInvalidNotation,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeEmptyComposition,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeEmptyComposition,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeParameterCountMismatch, "test"),
			expected: ErrCodeParameterCountMismatch,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

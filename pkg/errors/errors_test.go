package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidBinEdges, "need at least %d edges", 2)

	if err.Code != ErrCodeInvalidBinEdges {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidBinEdges)
	}

	if err.Message != "need at least 2 edges" {
		t.Errorf("Message = %v, want %v", err.Message, "need at least 2 edges")
	}

	expected := "INVALID_BIN_EDGES: need at least 2 edges"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(ErrCodeInvalidStyleDocument, cause, "decode style")

	if err.Code != ErrCodeInvalidStyleDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidStyleDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_STYLE_DOCUMENT: decode style: unexpected end of JSON input"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeNotNumeric, "test"),
			code:     ErrCodeNotNumeric,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNotNumeric, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
		{"Error type", New(ErrCodeColumnNotFound, "test"), ErrCodeColumnNotFound},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidBinEdges, "x"), true},
		{New(ErrCodeNotNumeric, "x"), true},
		{New(ErrCodeInvalidStyleDocument, "x"), true},
		{Wrap(ErrCodeInvalidFilter, errors.New("inner"), "x"), true},
		{New(ErrCodeNetwork, "x"), false},
		{New(ErrCodeFileNotFound, "x"), false},
		{errors.New("plain"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsValidation(tt.err); got != tt.want {
			t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

package errors

import (
	"strings"
	"testing"
)

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "SiO2", false},
		{"with space", "To plot", false},
		{"ratio", "Nb/Yb", false},
		{"unicode", "δ98Mo", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColumn) {
				t.Errorf("ValidateColumnName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColumn)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://docs.google.com/spreadsheets/d/abc/edit", false},
		{"http", "http://example.com/data.csv", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGroupKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"MORB|Pacific", false},
		{"basalt|0.0–5.0", false},
		{"OIB", false},
		{"", true},
		{"bad\x01key", true},
	}

	for _, tt := range tests {
		err := ValidateGroupKey(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGroupKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

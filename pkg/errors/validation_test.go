package errors

import (
	"strings"
	"testing"
)

func TestValidateFilePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "architecture", false},
		{"valid with dash", "payments-platform", false},
		{"valid with spaces", "My Diagram", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"traversal", "..", true},
		{"quote", `foo"bar`, true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Payments", false},
		{"tab allowed", "A\tB", false},
		{"blank", "   ", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("p", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"json", "diagram.json", ""},
		{"yaml upper", "DIAGRAM.YAML", ""},
		{"yml", "dir/diagram.yml", ""},
		{"empty", "", ErrCodeInvalidPath},
		{"drawio", "diagram.drawio", ErrCodeInvalidFormat},
		{"no extension", "diagram", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateInputPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

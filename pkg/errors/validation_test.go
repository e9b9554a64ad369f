package errors

import (
	"strings"
	"testing"
)

func TestValidateValveID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"conventional entry", "AA", false},
		{"lowercase", "aa", false},
		{"digits and underscore", "V_12", false},
		{"empty", "", true},
		{"space", "A A", true},
		{"punctuation", "AA;", true},
		{"too long", strings.Repeat("A", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValveID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValveID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidValve) {
				t.Errorf("ValidateValveID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidValve)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"stdin", "-", false},
		{"relative", "input.txt", false},
		{"absolute", "/tmp/valves.txt", false},
		{"empty", "", true},
		{"null byte", "in\x00put", true},
		{"newline", "in\nput", true},
		{"too long", strings.Repeat("a", 4097), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"", true},
		{"http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateRedisURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

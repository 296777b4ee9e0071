package track_test

import (
	"testing"

	"jt-go/internal/track"
)

func TestIsValidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/jobs/1", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		if got := track.IsValidURL(tt.in); got != tt.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		max     int
		wantErr bool
	}{
		{"empty unlimited", "", 0, false},
		{"empty limited", "", 10, false},
		{"under limit", "Senate votes", 20, false},
		{"at limit", strings.Repeat("a", 10), 10, false},
		{"over limit", strings.Repeat("a", 11), 10, true},
		{"unlimited long text", strings.Repeat("a", 100000), 0, false},
		{"negative means unlimited", "anything", -1, false},
		{"counts runes not bytes", "日本語のニュース", 8, false},
		{"multibyte over limit", "日本語のニュースです", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateText(%q, %d) error = %v, wantErr %v", tt.text, tt.max, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTextTooLong) {
				t.Errorf("error %v does not wrap ErrTextTooLong", err)
			}
		})
	}
}

func TestTooLongMessage(t *testing.T) {
	if got, want := TooLongMessage(280), "text must be at most 280 characters"; got != want {
		t.Errorf("TooLongMessage(280) = %q, want %q", got, want)
	}
}

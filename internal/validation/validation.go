// Package validation checks user-submitted headline text before it reaches
// the prediction pipeline.
package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrTextTooLong is returned when a headline exceeds the configured limit.
var ErrTextTooLong = errors.New("text exceeds maximum length")

// ValidateText enforces the rune limit; maxRunes <= 0 means unlimited.
// Empty text is valid and classified like any other input.
func ValidateText(text string, maxRunes int) error {
	if maxRunes <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > maxRunes {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, maxRunes)
	}
	return nil
}

// TooLongMessage is the client-facing message for ErrTextTooLong.
func TooLongMessage(maxRunes int) string {
	return fmt.Sprintf("text must be at most %d characters", maxRunes)
}

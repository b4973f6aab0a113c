package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest input, in runes, accepted by any provider.
const MaxTextLength = 5000

// ValidateText rejects input no provider can speak.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("text too long: %d characters (max %d)", n, MaxTextLength)
	}

	return nil
}

package clues

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// CountWords returns the number of non-empty tokens after splitting on
// whitespace and hyphens, so "dark-blue" counts as two words.
func CountWords(text string) int {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	return len(tokens)
}

// Validate checks clue text against a word limit and returns the trimmed
// clue. The error carries a reason suitable for sending back to the player.
func Validate(text string, maxWords int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("clue cannot be empty")
	}

	wordCount := CountWords(trimmed)
	if wordCount > maxWords {
		plural := "s"
		if maxWords == 1 {
			plural = ""
		}
		return "", fmt.Errorf("clue must be at most %d word%s (got %d)", maxWords, plural, wordCount)
	}

	return trimmed, nil
}

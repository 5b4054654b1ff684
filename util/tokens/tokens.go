package tokens

import "strings"

// Estimate approximates the token count of text without a model-specific
// tokenizer. Roughly one token per four characters, with a floor of one
// token per word.
func Estimate(text string) int {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 {
		return 0
	}

	byChars := (len(trimmed) + 3) / 4
	byWords := len(strings.Fields(trimmed))

	if byWords > byChars {
		return byWords
	}

	return byChars
}

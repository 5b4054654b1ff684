package extract

import (
	"regexp"
	"strings"
)

var (
	numberPattern  = regexp.MustCompile(`\$?\d+(?:[.,]\d+)*%?`)
	datePattern    = regexp.MustCompile(`(?i)\b(?:\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(?:/\d{2,4})?|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?|(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)|\d{1,2}(?::\d{2})?\s*(?:am|pm))\b`)
	wordPattern    = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*`)
	ordinalPattern = regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\s+([a-z]+)`)
)

var ordinals = map[string]int{
	"first":   1,
	"second":  2,
	"third":   3,
	"fourth":  4,
	"fifth":   5,
	"sixth":   6,
	"seventh": 7,
	"eighth":  8,
	"ninth":   9,
	"tenth":   10,
}

// sentence-leading words that look like proper nouns but are not
var entityStopwords = map[string]struct{}{
	"i": {}, "i'm": {}, "i've": {}, "the": {}, "a": {}, "an": {}, "my": {},
	"me": {}, "we": {}, "he": {}, "she": {}, "it": {}, "they": {}, "you": {},
	"yes": {}, "no": {}, "ok": {}, "okay": {}, "please": {}, "tell": {},
	"what": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"do": {}, "does": {}, "did": {}, "is": {}, "are": {}, "was": {},
	"remember": {}, "recall": {}, "user": {}, "assistant": {}, "note": {},
	"also": {}, "and": {}, "but": {}, "or": {}, "if": {}, "so": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {}, "january": {},
	"february": {}, "march": {}, "april": {}, "may": {}, "june": {},
	"july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {}, "about": {},
}

// Numbers returns every numeric value in text, including currency amounts
// and percentages, in order of appearance.
func Numbers(text string) []string {
	return dedupe(numberPattern.FindAllString(text, -1))
}

// Dates returns temporal anchors found in text: ISO dates, slash dates,
// month-day forms, weekday names, and clock times.
func Dates(text string) []string {
	return dedupe(datePattern.FindAllString(text, -1))
}

// Entities returns likely proper nouns: capitalized words that are not
// common sentence-leading function words.
func Entities(text string) []string {
	var out []string
	seen := map[string]struct{}{}

	for _, word := range wordPattern.FindAllString(text, -1) {
		if word[0] < 'A' || word[0] > 'Z' {
			continue
		}
		lower := strings.ToLower(word)
		if _, skip := entityStopwords[lower]; skip {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, word)
	}

	return out
}

// Ordinal detects an ordinal reference such as "the second code" and
// returns its position and the noun it qualifies.
func Ordinal(text string) (int, string, bool) {
	m := ordinalPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return ordinals[strings.ToLower(m[1])], strings.ToLower(m[2]), true
}

// HasCorrectionMarker reports whether text explicitly corrects an earlier
// statement.
func HasCorrectionMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range []string{"actually", "i was wrong", "correction", "i meant", "not anymore", "scratch that"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package category

import (
	"regexp"
	"strings"
)

var recallPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(do you (remember|recall|know))\b`),
	regexp.MustCompile(`(?i)^(what (did|do) (i|you) (say|tell( you| me)?|know|remember) about)\b`),
	regexp.MustCompile(`(?i)^(tell me (about|more about))\b`),
	regexp.MustCompile(`(?i)^(remind me (about|of))\b`),
}

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"i": {}, "my": {}, "me": {}, "you": {}, "your": {}, "we": {}, "our": {},
	"he": {}, "she": {}, "it": {}, "they": {}, "them": {}, "his": {}, "her": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "am": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {},
	"what": {}, "when": {}, "where": {}, "who": {}, "why": {}, "how": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "there": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {}, "with": {},
	"about": {}, "from": {}, "as": {}, "by": {}, "not": {}, "no": {},
	"so": {}, "just": {}, "very": {}, "really": {}, "some": {}, "any": {},
	"remember": {}, "recall": {}, "know": {}, "tell": {}, "say": {}, "said": {},
	"user": {}, "users": {}, "assistant": {}, "also": {},
}

var topicWordPattern = regexp.MustCompile(`[a-z][a-z'-]+`)

// StripRecallPhrasing removes recall-style question framing so routing
// follows the subject of the question, not its surface form.
func StripRecallPhrasing(text string) string {
	trimmed := strings.TrimSpace(text)
	for _, prefix := range recallPrefixes {
		if loc := prefix.FindStringIndex(trimmed); loc != nil {
			return strings.TrimSpace(trimmed[loc[1]:])
		}
	}
	return trimmed
}

// Topics extracts topic keywords: lowercased content words with
// stopwords removed, deduplicated, in order of appearance.
func Topics(text string) []string {
	var out []string
	seen := map[string]struct{}{}

	for _, word := range topicWordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(word) < 3 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}

	return out
}

func keywordHits(text string, keywords []string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}
	return hits
}

func overlaps(topics []string, vocabulary []string) bool {
	return overlapCount(topics, vocabulary) > 0
}

func overlapCount(topics []string, vocabulary []string) int {
	n := 0
	for _, topic := range topics {
		for _, word := range vocabulary {
			if topic == word || strings.HasPrefix(topic, word) || strings.HasPrefix(word, topic) {
				n++
				break
			}
		}
	}
	return n
}

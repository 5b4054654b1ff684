package storer

import (
	"math"
	"strings"
)

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatchesTerms reports whether content contains any of the terms,
// case-insensitively.
func MatchesTerms(content string, terms []string) bool {
	lower := strings.ToLower(content)
	for _, term := range terms {
		if len(strings.TrimSpace(term)) == 0 {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// InCategories reports whether category is in the filter set. An empty
// filter matches everything.
func InCategories(category string, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

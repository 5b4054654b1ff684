package compressor

import (
	"strings"

	"github.com/w-h-a/recall/util/extract"
)

// Verify compares numeric values, dates, and proper nouns between the
// source exchange and the extracted facts. It returns every value present
// in the input but absent from the output — each one is a silently
// dropped value the caller must log. Verification never blocks storage.
func Verify(exchange string, facts []Fact) []string {
	var combined strings.Builder
	for _, fact := range facts {
		combined.WriteString(fact.Content)
		combined.WriteString("\n")
	}
	output := combined.String()
	outputLower := strings.ToLower(output)

	var missing []string

	for _, number := range extract.Numbers(exchange) {
		if !strings.Contains(output, number) {
			missing = append(missing, number)
		}
	}

	for _, date := range extract.Dates(exchange) {
		if !strings.Contains(outputLower, strings.ToLower(date)) {
			missing = append(missing, date)
		}
	}

	for _, entity := range extract.Entities(exchange) {
		if !strings.Contains(outputLower, strings.ToLower(entity)) {
			missing = append(missing, entity)
		}
	}

	return missing
}

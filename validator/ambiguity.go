package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/w-h-a/recall/util/extract"
)

var descriptorTemplates = []string{
	// "Alex is my colleague." / "Alex is a doctor."
	`(?i)\b%s\s+is\s+(?:my|a|an|the|user's)\s+([a-z]+)`,
	// "User's brother Alex ..." / "my colleague Alex ..."
	`(?i)(?:my|user's)\s+([a-z]+)\s+(?:named\s+)?%s\b`,
}

// checkAmbiguity detects shared names: when a queried entity matches
// records describing distinct referents (e.g., a colleague and a brother
// both named Alex), it returns a clarifying disclosure — unless the
// response already acknowledges the distinct referents.
func (v *Validator) checkAmbiguity(ctx context.Context, query string, response string, userId string) (string, error) {
	for _, entity := range extract.Entities(query) {
		records, err := v.options.Storer.SearchKeyword(ctx, userId, nil, []string{entity}, v.options.Limit)
		if err != nil {
			return "", fmt.Errorf("ambiguity query for %q: %w", entity, err)
		}

		contents := make([]string, 0, len(records))
		for _, rec := range records {
			contents = append(contents, rec.Content)
		}

		descriptors := distinctDescriptors(entity, contents)
		if len(descriptors) < 2 {
			continue
		}

		if acknowledges(response, descriptors) {
			continue
		}

		return fmt.Sprintf(
			"Note: %q may refer to more than one person I know about (%s). Let me know which one you meant.",
			entity,
			strings.Join(descriptors, ", "),
		), nil
	}

	return "", nil
}

// distinctDescriptors extracts the referent descriptor of each fact that
// mentions the entity ("colleague" from "Alex is my colleague.").
func distinctDescriptors(entity string, contents []string) []string {
	patterns := make([]*regexp.Regexp, 0, len(descriptorTemplates))
	for _, template := range descriptorTemplates {
		pattern, err := regexp.Compile(fmt.Sprintf(template, regexp.QuoteMeta(entity)))
		if err != nil {
			continue
		}
		patterns = append(patterns, pattern)
	}

	seen := map[string]struct{}{}
	var out []string

	for _, content := range contents {
		for _, pattern := range patterns {
			m := pattern.FindStringSubmatch(content)
			if m == nil {
				continue
			}
			descriptor := strings.ToLower(m[1])
			if _, dup := seen[descriptor]; dup {
				continue
			}
			seen[descriptor] = struct{}{}
			out = append(out, descriptor)
		}
	}

	return out
}

// acknowledges reports whether the response already names at least two of
// the distinct referents.
func acknowledges(response string, descriptors []string) bool {
	lower := strings.ToLower(response)
	mentioned := 0
	for _, descriptor := range descriptors {
		if strings.Contains(lower, descriptor) {
			mentioned++
		}
	}
	return mentioned >= 2
}

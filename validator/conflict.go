package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/w-h-a/recall/category"
	"github.com/w-h-a/recall/storer"
)

var (
	constraintMarkers = []string{"allergic", "allergy", "intolerant", "cannot", "can't", "avoid", "never"}
	preferenceMarkers = []string{"love", "loves", "like", "likes", "prefer", "prefers", "favorite", "enjoy", "enjoys"}
)

// checkConflict looks for a documented constraint and a documented
// preference about the same object — e.g., an allergy to peanuts next to
// "user loves peanut butter" — and returns a disclosure when the
// response does not already surface the constraint.
func (v *Validator) checkConflict(ctx context.Context, query string, response string, userId string) (string, error) {
	constraints, err := v.options.Storer.SearchKeyword(ctx, userId, nil, constraintMarkers, v.options.Limit)
	if err != nil {
		return "", fmt.Errorf("constraint query: %w", err)
	}

	if len(constraints) == 0 {
		return "", nil
	}

	preferences, err := v.options.Storer.SearchKeyword(ctx, userId, nil, preferenceMarkers, v.options.Limit)
	if err != nil {
		return "", fmt.Errorf("preference query: %w", err)
	}

	for _, constraint := range constraints {
		for _, preference := range preferences {
			if constraint.Id == preference.Id {
				continue
			}

			object := sharedObject(constraint, preference)
			if len(object) == 0 {
				continue
			}

			if acknowledgesConstraint(response, object) {
				continue
			}

			return fmt.Sprintf(
				"Note: there may be a conflict in what I know — %q, but also %q. Worth double-checking around %s.",
				strings.TrimSuffix(constraint.Content, "."),
				strings.TrimSuffix(preference.Content, "."),
				object,
			), nil
		}
	}

	return "", nil
}

// acknowledgesConstraint reports whether the response already surfaces
// the constraint in its own words: it names the conflicting object
// alongside any constraint marker. Verbatim restatement is not required.
func acknowledgesConstraint(response string, object string) bool {
	lower := strings.ToLower(response)

	if !strings.Contains(lower, strings.ToLower(object)) {
		return false
	}

	for _, marker := range constraintMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// sharedObject finds a content word both facts mention, skipping the
// marker vocabulary itself.
func sharedObject(a storer.Record, b storer.Record) string {
	markers := map[string]struct{}{}
	for _, m := range append(append([]string{}, constraintMarkers...), preferenceMarkers...) {
		markers[m] = struct{}{}
	}

	bTopics := map[string]struct{}{}
	for _, topic := range category.Topics(b.Content) {
		bTopics[topic] = struct{}{}
	}

	for _, topic := range category.Topics(a.Content) {
		if _, isMarker := markers[topic]; isMarker {
			continue
		}
		for other := range bTopics {
			if _, isMarker := markers[other]; isMarker {
				continue
			}
			// prefix match covers singular/plural variants
			if topic == other || strings.HasPrefix(topic, other) || strings.HasPrefix(other, topic) {
				return other
			}
		}
	}

	return ""
}

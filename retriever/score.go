package retriever

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/util/extract"
)

type candidate struct {
	record  storer.Record
	score   float64
	boosted bool
}

func (r *Retriever) score(query string, records []storer.Record) []candidate {
	w := r.options.Weights
	now := time.Now().UTC()

	queryEntities := lowerSet(extract.Entities(query))
	explicitRecall := isExplicitRecall(query)

	ordinalId := r.resolveOrdinal(query, records)

	candidates := make([]candidate, 0, len(records))

	for _, rec := range records {
		cand := candidate{record: rec}

		similarity := float64(rec.Score)

		age := now.Sub(rec.CreatedAt)
		recency := math.Pow(0.5, age.Hours()/r.options.HalfLife.Hours())

		cand.score = (w.Similarity * similarity) + (w.Recency * recency)

		if matchesEntities(rec, queryEntities) {
			cand.score += w.Entity
			cand.boosted = true
		}

		if explicitRecall && rec.ExplicitRecall() {
			cand.score += w.Recall
			cand.boosted = true
		}

		if rec.Id == ordinalId {
			cand.score += w.Ordinal
			cand.boosted = true
		}

		candidates = append(candidates, cand)
	}

	return candidates
}

// resolveOrdinal maps an ordinal reference like "the second code" onto a
// concrete record: the nth record, by creation order, whose content
// mentions the qualified noun.
func (r *Retriever) resolveOrdinal(query string, records []storer.Record) string {
	position, noun, ok := extract.Ordinal(query)
	if !ok {
		return ""
	}

	var matching []storer.Record
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Content), noun) {
			matching = append(matching, rec)
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})

	if position < 1 || position > len(matching) {
		return ""
	}

	return matching[position-1].Id
}

// partition splits candidates into the high-priority group and the
// remainder. Boosted candidates seed the group; unboosted candidates that
// share an entity with a boosted one join it, so relation groups cross
// the cap boundary together. Both halves come back sorted by score.
func partition(candidates []candidate) ([]candidate, []candidate) {
	groupEntities := map[string]struct{}{}

	for _, cand := range candidates {
		if !cand.boosted {
			continue
		}
		for _, entity := range cand.record.Entities() {
			groupEntities[strings.ToLower(entity)] = struct{}{}
		}
	}

	var high, rest []candidate

	for _, cand := range candidates {
		if cand.boosted || matchesEntities(cand.record, groupEntities) {
			high = append(high, cand)
		} else {
			rest = append(rest, cand)
		}
	}

	byScore := func(group []candidate) func(i, j int) bool {
		return func(i, j int) bool {
			return group[i].score > group[j].score
		}
	}

	sort.SliceStable(high, byScore(high))
	sort.SliceStable(rest, byScore(rest))

	return high, rest
}

func matchesEntities(rec storer.Record, entities map[string]struct{}) bool {
	if len(entities) == 0 {
		return false
	}

	contentLower := strings.ToLower(rec.Content)

	for entity := range entities {
		if strings.Contains(contentLower, entity) {
			return true
		}
	}

	for _, entity := range rec.Entities() {
		if _, ok := entities[strings.ToLower(entity)]; ok {
			return true
		}
	}

	return false
}

func isExplicitRecall(query string) bool {
	lower := strings.ToLower(query)
	for _, marker := range []string{"remember", "recall", "i told you", "you know about"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

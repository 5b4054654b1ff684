package retriever

import (
	"context"
	"log/slog"
	"sort"

	"github.com/w-h-a/recall/category"
	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/util/tokens"
)

// keywordBaseScore stands in for embedding similarity on candidates whose
// embedding has not been generated yet.
const keywordBaseScore = 0.3

type Retriever struct {
	options Options
}

// Retrieve produces a ranked, capped list of current memories for the
// query, under the token budget and the hard count cap. High-priority
// candidates (entity, explicit-recall, ordinal, and their relation
// groups) are admitted first and may exceed the budget by the overflow
// fraction so linked facts are not split across the cap boundary.
func (r *Retriever) Retrieve(ctx context.Context, userId string, query string, opts ...RetrieveOption) (*Result, error) {
	options := NewRetrieveOptions(r.options, opts...)

	route := r.options.Router.Route(query)

	candidates, fallback, err := r.fetch(ctx, userId, query, route, options)
	if err != nil {
		return nil, err
	}

	scored := r.score(query, candidates)

	high, rest := partition(scored)

	selected := admit(high, rest, options.Budget, options.MaxCount, r.options.Overflow)

	result := &Result{
		Telemetry: Telemetry{
			CandidateCount: len(candidates),
			Ranks:          map[string]int{},
			Categories:     route.Categories,
			Fallback:       fallback,
		},
	}

	for rank, cand := range selected {
		result.Records = append(result.Records, cand.record)
		result.Telemetry.SelectedIds = append(result.Telemetry.SelectedIds, cand.record.Id)
		result.Telemetry.Ranks[cand.record.Id] = rank + 1
		result.Telemetry.TokensUsed += candTokens(cand.record)
	}

	slog.DebugContext(ctx, "retrieval complete",
		"user_id", userId,
		"candidates", result.Telemetry.CandidateCount,
		"selected", len(result.Records),
		"tokens", result.Telemetry.TokensUsed,
		"categories", route.Categories,
		"fallback", fallback,
	)

	return result, nil
}

// fetch gathers candidates from the routed categories: vector search over
// embedded records plus keyword search to cover records still waiting on
// background embedding. When the primary category comes up short, the
// cross-category fallback widens the search to the whole taxonomy.
func (r *Retriever) fetch(ctx context.Context, userId string, query string, route category.Route, options RetrieveOptions) ([]storer.Record, bool, error) {
	fetchLimit := options.MaxCount * 4
	if fetchLimit < 8 {
		fetchLimit = 8
	}

	vec := r.embedQuery(ctx, query)

	candidates, err := r.fetchIn(ctx, userId, query, route.Categories, vec, fetchLimit)
	if err != nil {
		return nil, false, err
	}

	fallback := route.Fallback

	if len(candidates) < r.options.MinPrimaryResults {
		// primary category yielded too little; search everything
		widened, err := r.fetchIn(ctx, userId, query, nil, vec, fetchLimit)
		if err == nil && len(widened) > len(candidates) {
			candidates = widened
			fallback = true
		}
	}

	return candidates, fallback, nil
}

func (r *Retriever) fetchIn(ctx context.Context, userId string, query string, categories []string, vec []float32, limit int) ([]storer.Record, error) {
	byId := map[string]storer.Record{}
	var order []string

	if len(vec) > 0 {
		matches, err := r.options.Storer.Search(ctx, userId, categories, vec, limit)
		if err != nil {
			return nil, err
		}
		for _, rec := range matches {
			byId[rec.Id] = rec
			order = append(order, rec.Id)
		}
	}

	terms := category.Topics(category.StripRecallPhrasing(query))

	if len(terms) > 0 {
		matches, err := r.options.Storer.SearchKeyword(ctx, userId, categories, terms, limit)
		if err != nil {
			slog.WarnContext(ctx, "keyword candidate fetch failed", "user_id", userId, "error", err)
		}
		for _, rec := range matches {
			if _, exists := byId[rec.Id]; exists {
				continue
			}
			rec.Score = keywordBaseScore
			byId[rec.Id] = rec
			order = append(order, rec.Id)
		}
	}

	candidates := make([]storer.Record, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, byId[id])
	}

	return candidates, nil
}

func (r *Retriever) embedQuery(ctx context.Context, query string) []float32 {
	if r.options.Embedder == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.options.EmbedTimeout)
	defer cancel()

	vec, err := r.options.Embedder.Embed(ctx, query)
	if err != nil {
		// keyword-only retrieval for this request
		slog.WarnContext(ctx, "query embedding failed, falling back to keywords", "error", err)
		return nil
	}

	return vec
}

func admit(high []candidate, rest []candidate, budget int, maxCount int, overflow float64) []candidate {
	overflowBudget := int(float64(budget) * (1 + overflow))

	var selected []candidate
	used := 0

	for _, cand := range high {
		if len(selected) >= maxCount {
			break
		}
		cost := candTokens(cand.record)
		if len(selected) > 0 && used+cost > overflowBudget {
			continue
		}
		selected = append(selected, cand)
		used += cost
	}

	for _, cand := range rest {
		if len(selected) >= maxCount {
			break
		}
		cost := candTokens(cand.record)
		if used+cost > budget {
			continue
		}
		selected = append(selected, cand)
		used += cost
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].score > selected[j].score
	})

	return selected
}

func candTokens(rec storer.Record) int {
	if rec.TokenCount > 0 {
		return rec.TokenCount
	}
	return tokens.Estimate(rec.Content)
}

func NewRetriever(opts ...Option) *Retriever {
	options := NewOptions(opts...)

	return &Retriever{
		options: options,
	}
}

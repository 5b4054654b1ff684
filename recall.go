package recall

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/w-h-a/recall/category"
	"github.com/w-h-a/recall/compressor"
	"github.com/w-h-a/recall/fingerprint"
	"github.com/w-h-a/recall/retriever"
	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/util/tokens"
)

// Engine is the conversational memory core: it compresses exchanges into
// durable facts, routes them into the category taxonomy, deduplicates
// and supersedes conflicting facts, and retrieves a token-bounded ranked
// subset for prompt injection.
type Engine struct {
	options Options
}

// StoreFact runs the full write pipeline on a raw exchange and returns
// the ids of the records the exchange produced (or boosted). Extraction
// failure never drops the exchange: the raw text is stored, flagged as
// uncompressed.
func (e *Engine) StoreFact(ctx context.Context, userId string, rawExchange string) ([]string, error) {
	if len(strings.TrimSpace(rawExchange)) == 0 {
		return nil, fmt.Errorf("raw exchange is required")
	}

	facts, uncompressed := e.compress(ctx, rawExchange)

	if !uncompressed {
		for _, missing := range compressor.Verify(rawExchange, facts) {
			slog.WarnContext(ctx, "compression dropped a value", "user_id", userId, "value", missing)
		}
	}

	explicitRecall := isExplicitRecallRequest(rawExchange)

	var ids []string

	for _, fact := range facts {
		id, err := e.storeOne(ctx, userId, fact, uncompressed, explicitRecall)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// RetrieveContext runs the read pipeline: category routing with
// cross-category fallback, candidate fetch, and token-budgeted ranking.
// Selected records get an access boost.
func (e *Engine) RetrieveContext(ctx context.Context, userId string, query string, opts ...retriever.RetrieveOption) (*retriever.Result, error) {
	result, err := e.options.Retriever.Retrieve(ctx, userId, query, opts...)
	if err != nil {
		return nil, err
	}

	for _, rec := range result.Records {
		if err := e.options.Storer.Boost(ctx, rec.Id, e.options.AccessBoost); err != nil {
			slog.WarnContext(ctx, "failed to record access", "record_id", rec.Id, "error", err)
		}
	}

	return result, nil
}

// ValidateResponse runs the post-generation ambiguity and conflict
// checks against the full store, independent of the retrieval cap.
func (e *Engine) ValidateResponse(ctx context.Context, response string, query string, userId string) (string, error) {
	return e.options.Validator.Validate(ctx, response, query, userId)
}

// Close drains the background embedding queue.
func (e *Engine) Close() {
	if e.options.Queue != nil {
		e.options.Queue.Close()
	}
}

func (e *Engine) compress(ctx context.Context, rawExchange string) ([]compressor.Fact, bool) {
	if e.options.Compressor == nil {
		fact, _ := compressor.NewFact(rawExchange, rawExchange)
		return []compressor.Fact{fact}, true
	}

	facts, err := e.options.Compressor.Compress(ctx, rawExchange)
	if err != nil {
		// never drop the exchange; store it raw and flag it
		slog.WarnContext(ctx, "fact extraction failed, storing uncompressed", "error", err)
		fact, _ := compressor.NewFact(rawExchange, rawExchange)
		return []compressor.Fact{fact}, true
	}

	if len(facts) == 0 {
		return nil, false
	}

	return facts, false
}

func (e *Engine) storeOne(ctx context.Context, userId string, fact compressor.Fact, uncompressed bool, explicitRecall bool) (string, error) {
	match, matched := e.options.Detector.Detect(fact.Content)

	route := e.route(userId, fact.Content)

	vec := e.embedInline(ctx, fact.Content)

	fingerprintId := ""
	if matched {
		fingerprintId = match.SlotId
	}

	if dup := e.options.Deduper.Check(ctx, userId, route.Primary, fingerprintId, vec); dup != nil {
		if err := e.options.Storer.Boost(ctx, dup.Id, e.options.DuplicateBoost); err != nil {
			return "", fmt.Errorf("boost duplicate: %w", err)
		}
		return dup.Id, nil
	}

	rec := storer.Record{
		UserId:     userId,
		Category:   route.Primary,
		Content:    fact.Content,
		TokenCount: tokens.Estimate(fact.Content),
		Metadata: map[string]any{
			storer.MetaEntities:          fact.Entities,
			storer.MetaTemporalAnchors:   fact.TemporalAnchors,
			storer.MetaCompressionRatio:  fact.Stats.Ratio(),
			storer.MetaRoutingConfidence: route.Confidence,
		},
	}

	if matched {
		rec.Metadata[storer.MetaFingerprint] = match.SlotId
		rec.Metadata[storer.MetaFingerprintMethod] = match.Method
	}
	if uncompressed {
		rec.Metadata[storer.MetaUncompressed] = true
	}
	if explicitRecall {
		rec.Metadata[storer.MetaExplicitRecall] = true
	}
	if route.Fallback {
		rec.Metadata[storer.MetaRouting] = "fallback"
	}

	var prior []storer.Record
	if matched {
		var err error
		prior, err = e.options.Storer.FindByFingerprint(ctx, userId, match.SlotId)
		if err != nil {
			slog.WarnContext(ctx, "fingerprint lookup failed", "user_id", userId, "fingerprint", match.SlotId, "error", err)
			prior = nil
		}
	}

	id, err := e.options.Storer.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("insert fact: %w", err)
	}

	if matched && len(prior) > 0 {
		e.supersede(ctx, userId, match, prior, id, fact.Content)
	}

	if len(vec) == 0 && e.options.Queue != nil {
		e.options.Queue.Enqueue(id, fact.Content)
	}

	e.accountCeiling(ctx, userId, route.Primary, rec.TokenCount)

	slog.DebugContext(ctx, "fact stored",
		"user_id", userId,
		"record_id", id,
		"category", route.Primary,
		"fingerprint", fingerprintId,
		"routing_confidence", route.Confidence,
		"embedded_inline", len(vec) > 0,
	)

	return id, nil
}

// supersede enforces at most one current record per (user, fingerprint).
// The winner of temporal reconciliation keeps the slot; everyone else is
// flipped to non-current.
func (e *Engine) supersede(ctx context.Context, userId string, match fingerprint.Match, prior []storer.Record, newId string, newContent string) {
	latest := prior[len(prior)-1]

	keepId := newId
	if fingerprint.Reconcile(latest.Content, newContent) == fingerprint.OldWins {
		keepId = latest.Id
	}

	if err := e.options.Storer.Supersede(ctx, userId, match.SlotId, keepId); err != nil {
		slog.WarnContext(ctx, "supersession failed", "user_id", userId, "fingerprint", match.SlotId, "keep_id", keepId, "error", err)
		return
	}

	slog.DebugContext(ctx, "fact superseded",
		"user_id", userId,
		"fingerprint", match.SlotId,
		"method", match.Method,
		"kept", keepId,
		"superseded_count", len(prior),
	)
}

// route classifies fact or query text, memoizing the decision per user
// for the duration of the conversational turn. The registry version is
// part of the key, so adding a category invalidates earlier decisions.
func (e *Engine) route(userId string, text string) category.Route {
	key := strconv.FormatUint(e.options.Router.Registry().Version(), 10) + "\x00" + text

	if cached, ok := e.options.Cache.Get(userId, "route", key); ok {
		if route, ok := cached.(category.Route); ok {
			return route
		}
	}

	route := e.options.Router.Route(text)

	e.options.Cache.Set(userId, "route", key, route)

	return route
}

// accountCeiling tracks storage-side token totals per user/category and
// warns when a category exceeds its declared ceiling. Accounting only —
// records are never evicted.
func (e *Engine) accountCeiling(ctx context.Context, userId string, categoryName string, tokenCount int) {
	def, ok := e.options.Router.Registry().Get(categoryName)
	if !ok || def.TokenCeiling <= 0 {
		return
	}

	total := tokenCount
	if cached, ok := e.options.Cache.Get(userId, "ceiling_tokens", categoryName); ok {
		if prev, ok := cached.(int); ok {
			total += prev
		}
	}

	e.options.Cache.Set(userId, "ceiling_tokens", categoryName, total)

	if total > def.TokenCeiling {
		slog.WarnContext(ctx, "category token ceiling exceeded",
			"user_id", userId,
			"category", categoryName,
			"total_tokens", total,
			"ceiling", def.TokenCeiling,
		)
	}
}

func (e *Engine) embedInline(ctx context.Context, content string) []float32 {
	if e.options.Embedder == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.options.EmbedTimeout)
	defer cancel()

	vec, err := e.options.Embedder.Embed(ctx, content)
	if err != nil {
		// the background queue retries; until then the record is
		// reachable by keyword only
		slog.WarnContext(ctx, "inline embedding failed, deferring to queue", "error", err)
		return nil
	}

	return vec
}

func isExplicitRecallRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range []string{"remember this", "remember that", "don't forget", "make sure you remember", "keep this in mind"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func New(opts ...Option) *Engine {
	options := NewOptions(opts...)

	if options.Storer == nil {
		panic("storer is required")
	}

	return &Engine{
		options: options,
	}
}

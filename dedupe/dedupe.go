package dedupe

import (
	"context"
	"log/slog"

	"github.com/w-h-a/recall/storer"
)

type Deduper struct {
	options Options
}

// Check looks for a current record in the user/category that is a near
// duplicate of the new fact's embedding: cosine similarity at or above
// the rejection threshold. Records carrying a different fingerprint are
// never duplicates. Check fails open — a missing embedding or a storage
// error means "not a duplicate" so storage is never blocked.
func (d *Deduper) Check(ctx context.Context, userId string, category string, fingerprintId string, vector []float32) *storer.Record {
	if len(vector) == 0 {
		return nil
	}

	candidates, err := d.options.Storer.Search(ctx, userId, []string{category}, vector, 1)
	if err != nil {
		slog.WarnContext(ctx, "dedup check failed open", "user_id", userId, "category", category, "error", err)
		return nil
	}

	if len(candidates) == 0 {
		return nil
	}

	existing := candidates[0]

	sim := storer.CosineSimilarity(vector, existing.Embedding)
	if sim < d.options.RejectionSimilarity {
		return nil
	}

	if existing.Fingerprint() != fingerprintId {
		return nil
	}

	slog.DebugContext(ctx, "near-duplicate fact detected", "user_id", userId, "category", category, "existing_id", existing.Id, "similarity", sim)

	return &existing
}

func NewDeduper(opts ...Option) *Deduper {
	options := NewOptions(opts...)

	return &Deduper{
		options: options,
	}
}

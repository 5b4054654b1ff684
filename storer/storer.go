package storer

import "context"

type Storer interface {
	// Insert persists a record and returns its id. The record only becomes
	// visible as current once fully persisted.
	Insert(ctx context.Context, rec Record) (string, error)
	Get(ctx context.Context, id string) (*Record, error)
	// Search runs an approximate nearest-neighbor query over current records
	// that already have an embedding. An empty category slice means all.
	Search(ctx context.Context, userId string, categories []string, vector []float32, limit int) ([]Record, error)
	// SearchKeyword matches current records by term, including records whose
	// embedding has not been generated yet.
	SearchKeyword(ctx context.Context, userId string, categories []string, terms []string, limit int) ([]Record, error)
	FindByFingerprint(ctx context.Context, userId string, fingerprintId string) ([]Record, error)
	// Supersede marks every current record carrying the fingerprint as
	// non-current, except keepId.
	Supersede(ctx context.Context, userId string, fingerprintId string, keepId string) error
	// Boost bumps usage frequency and relevance on a duplicate hit and
	// refreshes last-accessed.
	Boost(ctx context.Context, id string, relevanceDelta float64) error
	SetEmbedding(ctx context.Context, id string, vector []float32) error
}

package storer

import "time"

// Well-known metadata keys. Metadata is stored as JSON, so values read back
// from a provider may be generic (float64, []any).
const (
	MetaFingerprint       = "fingerprint"
	MetaFingerprintMethod = "fingerprint_method"
	MetaUncompressed      = "uncompressed"
	MetaExplicitRecall    = "explicit_recall"
	MetaEntities          = "entities"
	MetaTemporalAnchors   = "temporal_anchors"
	MetaCompressionRatio  = "compression_ratio"
	MetaRouting           = "routing"
	MetaRoutingConfidence = "routing_confidence"
)

type Record struct {
	Id             string
	UserId         string
	Category       string
	Subcategory    string
	Content        string
	TokenCount     int
	RelevanceScore float64
	UsageFrequency int
	Current        bool
	Embedding      []float32
	Metadata       map[string]any
	Score          float32
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Fingerprint returns the fingerprint slot id recorded at write time, if any.
func (r *Record) Fingerprint() string {
	if r.Metadata == nil {
		return ""
	}
	if v, ok := r.Metadata[MetaFingerprint].(string); ok {
		return v
	}
	return ""
}

// Entities returns the entity names detected at write time.
func (r *Record) Entities() []string {
	if r.Metadata == nil {
		return nil
	}
	switch v := r.Metadata[MetaEntities].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ExplicitRecall reports whether the record was stored under an explicit
// "remember this" request.
func (r *Record) ExplicitRecall() bool {
	if r.Metadata == nil {
		return false
	}
	v, ok := r.Metadata[MetaExplicitRecall].(bool)
	return ok && v
}

package validator

import (
	"context"
	"log/slog"
)

// Validator runs post-generation correctness checks. It queries storage
// directly, not through the token-budgeted retriever, so it sees records
// the injection cap discarded. It never turns a successful generation
// into an error: on any failure it logs and returns the response as-is.
type Validator struct {
	options Options
}

func (v *Validator) Validate(ctx context.Context, response string, query string, userId string) (string, error) {
	out := response

	disclosure, err := v.checkAmbiguity(ctx, query, out, userId)
	if err != nil {
		slog.WarnContext(ctx, "ambiguity validator failed, returning response unmodified", "user_id", userId, "error", err)
	} else if len(disclosure) > 0 {
		out += "\n\n" + disclosure
	}

	disclosure, err = v.checkConflict(ctx, query, out, userId)
	if err != nil {
		slog.WarnContext(ctx, "conflict validator failed, returning response unmodified", "user_id", userId, "error", err)
	} else if len(disclosure) > 0 {
		out += "\n\n" + disclosure
	}

	return out, nil
}

func NewValidator(opts ...Option) *Validator {
	options := NewOptions(opts...)

	return &Validator{
		options: options,
	}
}

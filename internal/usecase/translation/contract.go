package translation

import (
	"context"

	"github.com/plateful/dishq/internal/domain/moderation"
	"github.com/plateful/dishq/internal/domain/query"
)

// Moderator classifies text into policy-violation categories.
type Moderator interface {
	Moderate(ctx context.Context, text string) (moderation.Verdict, error)
}

// Translator converts free text into a structured recipe query.
type Translator interface {
	Translate(ctx context.Context, text string) (query.Spec, error)
}

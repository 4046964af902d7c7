package tastegraph

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Narrator writes a short narrative for an enhanced goal, typically with an LLM.
type Narrator interface {
	Narrate(ctx context.Context, in NarrativeInput) (string, error)
}

// narratorAdapter marks every failure of a user-supplied narrator as a narrator error.
type narratorAdapter struct {
	inner Narrator
}

func (a *narratorAdapter) Narrate(ctx context.Context, in domain.NarrativeInput) (string, error) {
	text, err := a.inner.Narrate(ctx, in)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNarratorProvider, err)
	}
	return text, nil
}

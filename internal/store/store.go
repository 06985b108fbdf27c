package store

import (
	"context"

	"miraiz/internal/model"
)

// InteractionStore persists question/answer interactions. The capability is
// injected so the backend can change without touching the core: the memory
// store is the default, the Postgres store is selected by configuration.
type InteractionStore interface {
	Add(ctx context.Context, interaction *model.Interaction) error
	List(ctx context.Context, userID string) ([]*model.Interaction, error)
	Metrics(ctx context.Context) (*model.InteractionMetrics, error)
	Close() error
}

package interfaces

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
)

// ExpertRepository defines the interface for expert persistence.
// Put is an idempotent upsert keyed by email (last write wins).
type ExpertRepository interface {
	Put(ctx context.Context, expert *model.Expert) (*model.Expert, error)
	Get(ctx context.Context, email string) (*model.Expert, error)
	List(ctx context.Context) ([]*model.Expert, error)
}

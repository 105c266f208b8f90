package interfaces

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
)

// CaseRepository defines the interface for case persistence.
// Create allocates the next sequential CASE-NNNN identifier; identifiers
// are never reused. List and ListByAssignee return cases in creation order.
type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) (*model.Case, error)
	Get(ctx context.Context, id types.CaseID) (*model.Case, error)
	List(ctx context.Context) ([]*model.Case, error)
	ListByAssignee(ctx context.Context, email string) ([]*model.Case, error)
	Update(ctx context.Context, c *model.Case) (*model.Case, error)
}

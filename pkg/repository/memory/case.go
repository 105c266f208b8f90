package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[types.CaseID]*model.Case
	order  []types.CaseID // creation order for listing
	nextID int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[types.CaseID]*model.Case),
		nextID: 1,
	}
}

// copyCase creates a deep copy of a case
func copyCase(c *model.Case) *model.Case {
	copied := *c
	return &copied
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCase(c)
	created.ID = types.NewCaseID(r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.cases[created.ID] = created
	r.order = append(r.order, created.ID)
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.order))
	for _, id := range r.order {
		cases = append(cases, copyCase(r.cases[id]))
	}

	return cases, nil
}

func (r *caseRepository) ListByAssignee(ctx context.Context, email string) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// O(n) scan is fine at this scale, no secondary index
	cases := make([]*model.Case, 0)
	for _, id := range r.order {
		if c := r.cases[id]; c.AssignedTo == email {
			cases = append(cases, copyCase(c))
		}
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	updated := copyCase(c)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cases[updated.ID] = updated
	return copyCase(updated), nil
}

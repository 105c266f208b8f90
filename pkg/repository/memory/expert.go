package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type expertRepository struct {
	mu      sync.RWMutex
	experts map[string]*model.Expert
}

func newExpertRepository() *expertRepository {
	return &expertRepository{
		experts: make(map[string]*model.Expert),
	}
}

func copyExpert(e *model.Expert) *model.Expert {
	copied := *e
	return &copied
}

// Put upserts an expert keyed by email. Registering an already-known
// email overwrites name and online flag, never duplicates the record.
func (r *expertRepository) Put(ctx context.Context, expert *model.Expert) (*model.Expert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyExpert(expert)
	r.experts[stored.Email] = stored
	return copyExpert(stored), nil
}

func (r *expertRepository) Get(ctx context.Context, email string) (*model.Expert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.experts[email]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "expert not found", goerr.V("email", email))
	}

	return copyExpert(e), nil
}

func (r *expertRepository) List(ctx context.Context) ([]*model.Expert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	experts := make([]*model.Expert, 0, len(r.experts))
	for _, e := range r.experts {
		experts = append(experts, copyExpert(e))
	}
	sort.Slice(experts, func(i, j int) bool {
		return experts[i].Email < experts[j].Email
	})

	return experts, nil
}

package usecase

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/notify"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// CaseUseCase is the case store: it owns ID allocation (delegated to the
// repository), status transitions, and case-changed event fan-out.
type CaseUseCase struct {
	repo       interfaces.Repository
	dispatcher *notify.Dispatcher
}

func NewCaseUseCase(repo interfaces.Repository, dispatcher *notify.Dispatcher) *CaseUseCase {
	return &CaseUseCase{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Create validates and stores a new case with status "new", then emits a
// case-changed event with a nil previous status.
func (uc *CaseUseCase) Create(ctx context.Context, title, description string, priority types.Priority, assignedTo string) (*model.Case, error) {
	if title == "" {
		return nil, goerr.Wrap(ErrTitleRequired, "cannot create case")
	}
	if description == "" {
		return nil, goerr.Wrap(ErrDescriptionRequired, "cannot create case")
	}

	priority = priority.Normalize()
	if !priority.IsValid() {
		return nil, goerr.Wrap(ErrInvalidPriority, "cannot create case", goerr.V("priority", priority))
	}

	created, err := uc.repo.Case().Create(ctx, &model.Case{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      types.CaseStatusNew,
		AssignedTo:  assignedTo,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	uc.emitCaseEvent(ctx, &model.CaseEvent{Case: created})

	return created, nil
}

// UpdateStatus writes the new status and returns the updated case along
// with the previous status so callers can build transition-specific
// text. Writing the current status again is a no-op that still
// refreshes UpdatedAt.
func (uc *CaseUseCase) UpdateStatus(ctx context.Context, id types.CaseID, newStatus types.CaseStatus) (*model.Case, types.CaseStatus, error) {
	if !newStatus.IsValid() {
		return nil, "", goerr.Wrap(ErrInvalidStatus, "cannot update case", goerr.V("status", newStatus))
	}

	existing, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, "", goerr.Wrap(ErrCaseNotFound, "cannot update case", goerr.V(CaseIDKey, id))
	}

	previous := existing.Status
	existing.Status = newStatus

	updated, err := uc.repo.Case().Update(ctx, existing)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	uc.emitCaseEvent(ctx, &model.CaseEvent{Case: updated, PreviousStatus: &previous})

	return updated, previous, nil
}

// Get returns one case by ID
func (uc *CaseUseCase) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case lookup failed", goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// List returns all cases in creation order
func (uc *CaseUseCase) List(ctx context.Context) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

// ListByAssignee returns the cases assigned to an expert, in creation order
func (uc *CaseUseCase) ListByAssignee(ctx context.Context, email string) ([]*model.Case, error) {
	cases, err := uc.repo.Case().ListByAssignee(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases by assignee", goerr.V(EmailKey, email))
	}
	return cases, nil
}

// emitCaseEvent hands the event to the dispatcher without blocking the
// caller. A notification failure never breaks the mutation.
func (uc *CaseUseCase) emitCaseEvent(ctx context.Context, ev *model.CaseEvent) {
	if uc.dispatcher == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		uc.dispatcher.HandleCaseEvent(ctx, ev)
		return nil
	})
}

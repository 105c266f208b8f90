package usecase

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type ExpertUseCase struct {
	repo interfaces.Repository
}

func NewExpertUseCase(repo interfaces.Repository) *ExpertUseCase {
	return &ExpertUseCase{repo: repo}
}

// Register upserts an expert. Re-registering a known email overwrites
// the name and resets the online flag to true (last write wins).
func (uc *ExpertUseCase) Register(ctx context.Context, email, name string) (*model.Expert, error) {
	if email == "" {
		return nil, goerr.Wrap(ErrEmailRequired, "cannot register expert")
	}
	if name == "" {
		return nil, goerr.Wrap(ErrNameRequired, "cannot register expert")
	}

	expert, err := uc.repo.Expert().Put(ctx, &model.Expert{
		Email:    email,
		Name:     name,
		IsOnline: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register expert", goerr.V(EmailKey, email))
	}

	return expert, nil
}

// Get returns one expert by email
func (uc *ExpertUseCase) Get(ctx context.Context, email string) (*model.Expert, error) {
	expert, err := uc.repo.Expert().Get(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(ErrExpertNotFound, "expert lookup failed", goerr.V(EmailKey, email))
	}
	return expert, nil
}

// List returns all registered experts
func (uc *ExpertUseCase) List(ctx context.Context) ([]*model.Expert, error) {
	experts, err := uc.repo.Expert().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list experts")
	}
	return experts, nil
}

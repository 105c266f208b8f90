package usecase

import (
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/notify"
)

type UseCases struct {
	repo       interfaces.Repository
	dispatcher *notify.Dispatcher
	Case       *CaseUseCase
	Expert     *ExpertUseCase
}

type Option func(*UseCases)

// WithNotify wires the notification dispatcher; case-changed events are
// fanned out to it asynchronously.
func WithNotify(dispatcher *notify.Dispatcher) Option {
	return func(uc *UseCases) {
		uc.dispatcher = dispatcher
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = NewCaseUseCase(repo, uc.dispatcher)
	uc.Expert = NewExpertUseCase(repo)

	return uc
}

package memory

import (
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-process repository. All state is volatile: a restart
// loses every case and expert, which is the documented contract.
type Memory struct {
	cases   *caseRepository
	experts *expertRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		cases:   newCaseRepository(),
		experts: newExpertRepository(),
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Expert() interfaces.ExpertRepository {
	return m.experts
}

func (m *Memory) Close() error {
	return nil
}

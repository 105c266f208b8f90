package model

import (
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
)

// Case represents a trackable incident/work item with a status lifecycle
type Case struct {
	ID          types.CaseID
	Title       string
	Description string
	Priority    types.Priority
	Status      types.CaseStatus
	AssignedTo  string // expert email, empty if unassigned
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CaseEvent is emitted by the case store on every successful
// create or status update. PreviousStatus is nil for creation.
type CaseEvent struct {
	Case           *Case
	PreviousStatus *types.CaseStatus
}

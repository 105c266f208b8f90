package types

import "fmt"

// CaseStatus represents the status of a case
type CaseStatus string

const (
	CaseStatusNew            CaseStatus = "new"
	CaseStatusInProgress     CaseStatus = "in-progress"
	CaseStatusExpertAssigned CaseStatus = "expert-assigned"
	CaseStatusResolved       CaseStatus = "resolved"
	CaseStatusClosed         CaseStatus = "closed"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusNew,
		CaseStatusInProgress,
		CaseStatusExpertAssigned,
		CaseStatusResolved,
		CaseStatusClosed,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusNew,
		CaseStatusInProgress,
		CaseStatusExpertAssigned,
		CaseStatusResolved,
		CaseStatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}

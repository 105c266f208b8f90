package types

import (
	"fmt"
	"regexp"
)

// CaseID identifies a case. IDs are allocated sequentially by the case
// repository and formatted as CASE-NNNN (zero-padded to 4 digits).
type CaseID string

var caseIDPattern = regexp.MustCompile(`^CASE-\d{4,}$`)

// NewCaseID formats a sequence number into a case ID
func NewCaseID(seq int64) CaseID {
	return CaseID(fmt.Sprintf("CASE-%04d", seq))
}

// IsValid checks if the case ID matches the CASE-NNNN format
func (x CaseID) IsValid() bool {
	return caseIDPattern.MatchString(string(x))
}

// String returns the string representation of the case ID
func (x CaseID) String() string {
	return string(x)
}

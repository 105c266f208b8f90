package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors (surfaced to the caller, never retried)
	ErrTitleRequired       = errors.New("case title is required")
	ErrDescriptionRequired = errors.New("case description is required")
	ErrInvalidPriority     = errors.New("invalid case priority")
	ErrInvalidStatus       = errors.New("invalid case status")
	ErrEmailRequired       = errors.New("expert email is required")
	ErrNameRequired        = errors.New("expert name is required")

	// Not found errors
	ErrCaseNotFound   = errors.New("case not found")
	ErrExpertNotFound = errors.New("expert not found")
)

// Context keys for error values
const (
	CaseIDKey = "case_id"
	EmailKey  = "email"
)

// IsValidation reports whether err belongs to the validation family
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrTitleRequired,
		ErrDescriptionRequired,
		ErrInvalidPriority,
		ErrInvalidStatus,
		ErrEmailRequired,
		ErrNameRequired,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the not-found family
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCaseNotFound) || errors.Is(err, ErrExpertNotFound)
}

package model

import (
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
)

// NotificationIntent describes one user-facing alert before rendering.
// DedupeKey collapses repeated alerts for the same logical event; CaseID
// is a back-reference used only for click navigation.
type NotificationIntent struct {
	Title              string
	Body               string
	DedupeKey          string
	Priority           types.Priority
	CaseID             types.CaseID
	RequireInteraction bool
}

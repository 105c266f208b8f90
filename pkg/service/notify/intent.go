package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
)

// NewCaseIntent builds the alert for a freshly created case. The dedupe
// key is stable per case, so a repeated new-case event replaces the
// prior alert instead of stacking a second one.
func NewCaseIntent(c *model.Case) model.NotificationIntent {
	return model.NotificationIntent{
		Title:     fmt.Sprintf("🚨 New Case Assigned: %s", c.Title),
		Body:      fmt.Sprintf("%s Priority: %s\n📝 %s", c.Priority.Emoji(), strings.ToUpper(c.Priority.String()), c.Description),
		DedupeKey: fmt.Sprintf("case-%s", c.ID),
		Priority:  c.Priority,
		CaseID:    c.ID,
	}
}

// CaseUpdateIntent builds the alert for a status update. Each update
// carries distinct information, so the dedupe key is unique per update.
func CaseUpdateIntent(c *model.Case, changeDescription string) model.NotificationIntent {
	return model.NotificationIntent{
		Title:     fmt.Sprintf("📌 Case Update: %s", c.Title),
		Body:      changeDescription,
		DedupeKey: fmt.Sprintf("update-%s-%d", c.ID, time.Now().UnixMilli()),
		Priority:  c.Priority,
		CaseID:    c.ID,
	}
}

// HighPriorityIntent builds the alert for a critical case. It forces the
// interaction-required flag: critical alerts must not be silently lost
// to the auto-dismiss timer.
func HighPriorityIntent(c *model.Case) model.NotificationIntent {
	return model.NotificationIntent{
		Title:              fmt.Sprintf("🔴 Critical Case: %s", c.Title),
		Body:               fmt.Sprintf("Priority: %s\n📝 %s", strings.ToUpper(c.Priority.String()), c.Description),
		DedupeKey:          fmt.Sprintf("case-%s", c.ID),
		Priority:           types.PriorityCritical,
		CaseID:             c.ID,
		RequireInteraction: true,
	}
}

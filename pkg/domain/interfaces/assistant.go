package interfaces

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
)

// Assistant is the opaque AI collaborator for a swarm room.
// Every call may fail; callers decide whether the failure is surfaced
// (user-invoked paths) or swallowed (background paths).
type Assistant interface {
	// Analyze produces the initial case briefing posted when a room opens
	Analyze(ctx context.Context, c *model.Case) (string, error)

	// Summarize produces a recap of the chat log for late joiners
	Summarize(ctx context.Context, c *model.Case, log []*model.ChatMessage) (string, error)

	// SuggestFix produces a quick-fix suggestion for one user message
	SuggestFix(ctx context.Context, c *model.Case, message string) (string, error)
}

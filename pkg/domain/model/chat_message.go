package model

import (
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
)

// Reserved sender names for non-human chat entries
const (
	SenderAIAssistant = "AI Assistant"
	SenderSystem      = "System"
)

// ChatMessage is one entry in a swarm room's append-only log.
// IDs are gap-free sequence numbers unique within a session, and
// log order equals ID order equals insertion order.
type ChatMessage struct {
	ID        int64
	Sender    string
	Kind      types.MessageKind
	Content   string
	Timestamp time.Time
	IsAI      bool
}

// CountsForSummary reports whether this message advances the summary
// trigger counter. System and AI-authored entries do not, so a posted
// summary can never trigger the next one.
func (m *ChatMessage) CountsForSummary() bool {
	return m.Kind != types.MessageKindSystem && !m.IsAI
}

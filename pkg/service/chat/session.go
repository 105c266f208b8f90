package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// SummaryCommand triggers an on-demand summary instead of being posted
// as a chat message. Matched case-insensitively after trimming.
const SummaryCommand = "/summary"

const summaryHeading = "📋 **Chat Summary for Late Joiners**\n\n"

// ErrEmptyMessage is returned for blank user input
var ErrEmptyMessage = goerr.New("message is empty")

// Session owns the append-only message log of one swarm room and
// coordinates the summary scheduler and the AI collaborator. All log
// mutations are serialized; AI calls run asynchronously and never block
// new input. Summaries are not transactional snapshots: messages
// appended while a summary request is in flight may interleave before
// the summary lands.
type Session struct {
	mu          sync.Mutex
	caseData    *model.Case
	assistant   interfaces.Assistant
	scheduler   *SummaryScheduler
	messages    []*model.ChatMessage
	nextID      int64
	summarizing bool
	closed      bool

	// room lifetime: cancelled on Close so late-resolving AI calls abort
	ctx    context.Context
	cancel context.CancelFunc
}

type SessionOption func(*sessionConfig)

type sessionConfig struct {
	threshold int
	idle      time.Duration
}

// WithSummaryThreshold sets the count trigger of the scheduler
func WithSummaryThreshold(n int) SessionOption {
	return func(c *sessionConfig) {
		c.threshold = n
	}
}

// WithIdleWindow sets the debounced time trigger of the scheduler
func WithIdleWindow(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.idle = d
	}
}

// NewSession creates a swarm room session for the given case
func NewSession(caseData *model.Case, ai interfaces.Assistant, opts ...SessionOption) *Session {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		caseData:  caseData,
		assistant: ai,
		nextID:    1,
		ctx:       ctx,
		cancel:    cancel,
	}
	s.scheduler = NewSummaryScheduler(cfg.threshold, cfg.idle, func() {
		s.requestSummary(false)
	})
	return s
}

// Case returns the case this room belongs to
func (s *Session) Case() *model.Case {
	return s.caseData
}

// Start posts the AI welcome briefing. Best effort: a failing analysis
// leaves the room usable with no visible message.
func (s *Session) Start(ctx context.Context) {
	if s.assistant == nil {
		return
	}
	async.Go(s.ctx, func(ctx context.Context) error {
		briefing, err := s.assistant.Analyze(ctx, s.caseData)
		if err != nil {
			return goerr.Wrap(err, "case analysis failed", goerr.V("case_id", s.caseData.ID))
		}
		s.append(model.SenderAIAssistant, briefing, types.MessageKindMessage, true)
		return nil
	})
}

// append assigns the next sequence ID, pushes the message, and reports
// it to the scheduler. Returns nil if the room has been disposed.
func (s *Session) append(sender, content string, kind types.MessageKind, isAI bool) *model.ChatMessage {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	msg := &model.ChatMessage{
		ID:        s.nextID,
		Sender:    sender,
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now().UTC(),
		IsAI:      isAI,
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	s.scheduler.OnMessageAppended(msg)
	return msg
}

// SendUserMessage handles one line of user input. The /summary command
// triggers an on-demand summary and is never appended as a message;
// anything else is appended and answered with a best-effort async
// quick-fix suggestion.
func (s *Session) SendUserMessage(ctx context.Context, sender, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return goerr.Wrap(ErrEmptyMessage, "empty chat message", goerr.V("case_id", s.caseData.ID))
	}

	if strings.EqualFold(trimmed, SummaryCommand) {
		s.RequestSummary(ctx)
		return nil
	}

	if s.append(sender, trimmed, types.MessageKindMessage, false) == nil {
		return goerr.New("room is closed", goerr.V("case_id", s.caseData.ID))
	}

	if s.assistant != nil {
		async.Go(s.ctx, func(ctx context.Context) error {
			suggestion, err := s.assistant.SuggestFix(ctx, s.caseData, trimmed)
			if err != nil {
				// Best effort, dropped silently (logged by async)
				return goerr.Wrap(err, "quick-fix suggestion failed", goerr.V("case_id", s.caseData.ID))
			}
			s.append(model.SenderAIAssistant, suggestion, types.MessageKindSuggestion, true)
			return nil
		})
	}

	return nil
}

// RequestSummary runs the user-invoked summary path, bypassing the
// scheduler's count/time gating. Failures are reported inline in the
// log as a visible system message.
func (s *Session) RequestSummary(ctx context.Context) {
	s.requestSummary(true)
}

// requestSummary starts one summary request. Only one may be in flight;
// triggers arriving meanwhile are coalesced, not queued.
func (s *Session) requestSummary(userRequested bool) {
	s.mu.Lock()
	if s.closed || s.summarizing || s.assistant == nil {
		s.mu.Unlock()
		return
	}
	s.summarizing = true
	snapshot := make([]*model.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	// Both triggers reset together on any fire
	s.scheduler.Reset()

	async.Go(s.ctx, func(ctx context.Context) error {
		defer func() {
			s.mu.Lock()
			s.summarizing = false
			s.mu.Unlock()
		}()

		summary, err := s.assistant.Summarize(ctx, s.caseData, snapshot)
		if err != nil {
			if userRequested {
				s.append(model.SenderSystem,
					"❌ **Summary Generation Failed**\n\nUnable to generate a chat summary right now. Please try again later.",
					types.MessageKindSystem, false)
				return nil
			}
			// Background summaries are best effort (logged by async)
			return goerr.Wrap(err, "background summary failed", goerr.V("case_id", s.caseData.ID))
		}

		s.append(model.SenderAIAssistant, summaryHeading+summary, types.MessageKindSystem, true)
		return nil
	})
}

// Messages returns a read-only snapshot of the log in append order
func (s *Session) Messages() []*model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*model.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Close disposes the room: pending timers are cancelled and in-flight
// AI calls are aborted. Late-resolving calls find the room closed and
// no-op instead of writing into a destroyed session.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.scheduler.Stop()
}

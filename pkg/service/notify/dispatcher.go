package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/logging"
)

// DefaultDismissAfter is how long a notification stays visible without
// interaction before it is closed automatically.
const DefaultDismissAfter = 10 * time.Second

// Notification is a rendered alert handed to a Platform
type Notification struct {
	ID     string
	Intent model.NotificationIntent
}

// Platform is the rendering backend for notifications (console, Slack, ...)
type Platform interface {
	Show(ctx context.Context, n *Notification) error
	Dismiss(ctx context.Context, id string) error
}

// Prompter asks the user for notification consent. It is invoked at most
// once per process; the answer is final until restart.
type Prompter interface {
	Request(ctx context.Context) (bool, error)
}

type active struct {
	id       string
	caseID   types.CaseID
	timer    *time.Timer
	consumed bool
}

// Dispatcher converts case events into at most one rendered alert per
// logically distinct occurrence. Dispatch never returns an error:
// missing permission or platform is a silent false.
type Dispatcher struct {
	mu           sync.Mutex
	platform     Platform
	prompter     Prompter
	permission   types.Permission
	actives      map[string]*active // keyed by dedupe key
	dismissAfter time.Duration
	navigate     func(caseID types.CaseID)
	closed       bool
}

type Option func(*Dispatcher)

// WithPrompter sets the consent prompt collaborator. Without one the
// first RequestPermission grants immediately (headless platforms have
// no consent gate).
func WithPrompter(p Prompter) Option {
	return func(d *Dispatcher) {
		d.prompter = p
	}
}

// WithDismissAfter overrides the auto-dismiss delay
func WithDismissAfter(dur time.Duration) Option {
	return func(d *Dispatcher) {
		if dur > 0 {
			d.dismissAfter = dur
		}
	}
}

// WithNavigate sets the click-navigation callback
func WithNavigate(fn func(caseID types.CaseID)) Option {
	return func(d *Dispatcher) {
		d.navigate = fn
	}
}

func New(platform Platform, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		platform:     platform,
		permission:   types.PermissionUnrequested,
		actives:      make(map[string]*active),
		dismissAfter: DefaultDismissAfter,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Permission returns the current permission state
func (d *Dispatcher) Permission() types.Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

// RequestPermission asks for notification consent. It is a no-op
// returning the prior decision when the state is already decided.
func (d *Dispatcher) RequestPermission(ctx context.Context) types.Permission {
	d.mu.Lock()
	if d.permission.Decided() {
		defer d.mu.Unlock()
		return d.permission
	}
	prompter := d.prompter
	d.mu.Unlock()

	decision := types.PermissionGranted
	if prompter != nil {
		granted, err := prompter.Request(ctx)
		if err != nil {
			logging.From(ctx).Warn("notification permission prompt failed", "error", err.Error())
			granted = false
		}
		if !granted {
			decision = types.PermissionDenied
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.permission.Decided() {
		d.permission = decision
	}
	return d.permission
}

// Dispatch renders the intent. It returns false without side effects if
// permission is not granted, no platform is configured, or the
// dispatcher is closed. A prior alert with the same dedupe key is
// replaced rather than duplicated.
func (d *Dispatcher) Dispatch(ctx context.Context, intent model.NotificationIntent) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.platform == nil || d.permission != types.PermissionGranted {
		return false
	}

	if prior, exists := d.actives[intent.DedupeKey]; exists {
		d.dropLocked(ctx, intent.DedupeKey, prior)
	}

	n := &Notification{
		ID:     uuid.NewString(),
		Intent: intent,
	}
	if err := d.platform.Show(ctx, n); err != nil {
		logging.From(ctx).Warn("failed to show notification",
			"dedupe_key", intent.DedupeKey,
			"error", err.Error(),
		)
		return false
	}

	entry := &active{id: n.ID, caseID: intent.CaseID}
	if !intent.RequireInteraction {
		entry.timer = time.AfterFunc(d.dismissAfter, func() {
			d.autoDismiss(intent.DedupeKey, n.ID)
		})
	}
	d.actives[intent.DedupeKey] = entry

	return true
}

// Click handles user interaction with a visible notification: it
// navigates to the referenced case and consumes the alert exactly once.
func (d *Dispatcher) Click(ctx context.Context, dedupeKey string) bool {
	d.mu.Lock()
	entry, exists := d.actives[dedupeKey]
	if !exists || entry.consumed {
		d.mu.Unlock()
		return false
	}
	entry.consumed = true
	navigate := d.navigate
	caseID := entry.caseID
	d.dropLocked(ctx, dedupeKey, entry)
	d.mu.Unlock()

	if navigate != nil {
		navigate(caseID)
	}
	return true
}

// Visible reports whether an alert with the given dedupe key is showing
func (d *Dispatcher) Visible(dedupeKey string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.actives[dedupeKey]
	return exists
}

// Close dismisses all visible notifications and cancels their timers.
// Further Dispatch calls return false.
func (d *Dispatcher) Close(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for key, entry := range d.actives {
		d.dropLocked(ctx, key, entry)
	}
}

// autoDismiss fires from a notification's single-shot timer
func (d *Dispatcher) autoDismiss(dedupeKey, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, exists := d.actives[dedupeKey]
	if !exists || entry.id != id {
		// Already replaced or consumed
		return
	}
	d.dropLocked(context.Background(), dedupeKey, entry)
}

// dropLocked removes a visible notification. Caller holds d.mu.
func (d *Dispatcher) dropLocked(ctx context.Context, dedupeKey string, entry *active) {
	if entry.timer != nil {
		entry.timer.Stop()
	}
	if err := d.platform.Dismiss(ctx, entry.id); err != nil {
		logging.From(ctx).Warn("failed to dismiss notification",
			"dedupe_key", dedupeKey,
			"error", err.Error(),
		)
	}
	delete(d.actives, dedupeKey)
}

// HandleCaseEvent turns a case-changed event into an alert. Creation of
// a critical case forces the interaction-required intent; status updates
// carry a transition description built from the previous status.
func (d *Dispatcher) HandleCaseEvent(ctx context.Context, ev *model.CaseEvent) bool {
	if ev == nil || ev.Case == nil {
		return false
	}

	var intent model.NotificationIntent
	switch {
	case ev.PreviousStatus == nil && ev.Case.Priority == types.PriorityCritical:
		intent = HighPriorityIntent(ev.Case)
	case ev.PreviousStatus == nil:
		intent = NewCaseIntent(ev.Case)
	default:
		change := fmt.Sprintf("Status changed to %s (was %s)", ev.Case.Status, *ev.PreviousStatus)
		intent = CaseUpdateIntent(ev.Case, change)
	}

	return d.Dispatch(ctx, intent)
}

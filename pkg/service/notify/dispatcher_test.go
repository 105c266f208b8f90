package notify_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/notify"
	"github.com/m-mizutani/gt"
)

// recordPlatform captures Show/Dismiss calls for assertions
type recordPlatform struct {
	mu        sync.Mutex
	shown     []*notify.Notification
	dismissed []string
	showErr   error
}

func (p *recordPlatform) Show(ctx context.Context, n *notify.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showErr != nil {
		return p.showErr
	}
	p.shown = append(p.shown, n)
	return nil
}

func (p *recordPlatform) Dismiss(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed = append(p.dismissed, id)
	return nil
}

func (p *recordPlatform) shownCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.shown)
}

func (p *recordPlatform) dismissedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.dismissed)
}

func (p *recordPlatform) lastShown() *notify.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.shown) == 0 {
		return nil
	}
	return p.shown[len(p.shown)-1]
}

// stubPrompter answers the consent prompt and counts invocations
type stubPrompter struct {
	mu    sync.Mutex
	grant bool
	err   error
	calls int
}

func (p *stubPrompter) Request(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.grant, p.err
}

func (p *stubPrompter) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testIntent(key string) model.NotificationIntent {
	return model.NotificationIntent{
		Title:     "Test Alert",
		Body:      "something happened",
		DedupeKey: key,
		Priority:  types.PriorityMedium,
		CaseID:    "CASE-0001",
	}
}

func TestDispatcher_Permission(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatch before any permission grant is a silent no-op", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).False()
		gt.Number(t, platform.shownCount()).Equal(0)
		gt.Value(t, d.Permission()).Equal(types.PermissionUnrequested)
	})

	t.Run("without a prompter the first request grants", func(t *testing.T) {
		d := notify.New(&recordPlatform{})
		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionGranted)
	})

	t.Run("the prompt is asked at most once", func(t *testing.T) {
		prompter := &stubPrompter{grant: true}
		d := notify.New(&recordPlatform{}, notify.WithPrompter(prompter))

		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionGranted)
		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionGranted)
		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionGranted)
		gt.Number(t, prompter.callCount()).Equal(1)
	})

	t.Run("a denied decision is final", func(t *testing.T) {
		platform := &recordPlatform{}
		prompter := &stubPrompter{grant: false}
		d := notify.New(platform, notify.WithPrompter(prompter))

		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionDenied)
		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).False()
		gt.Number(t, platform.shownCount()).Equal(0)

		// Asking again does not reopen the prompt
		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionDenied)
		gt.Number(t, prompter.callCount()).Equal(1)
	})

	t.Run("a failing prompt denies", func(t *testing.T) {
		prompter := &stubPrompter{grant: true, err: errors.New("prompt unavailable")}
		d := notify.New(&recordPlatform{}, notify.WithPrompter(prompter))

		gt.Value(t, d.RequestPermission(ctx)).Equal(types.PermissionDenied)
	})
}

func TestDispatcher_Dedupe(t *testing.T) {
	ctx := context.Background()

	t.Run("same dedupe key replaces the visible alert", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()
		first := platform.lastShown()

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()

		// The prior alert was dismissed, exactly one remains visible
		gt.Number(t, platform.shownCount()).Equal(2)
		gt.Number(t, platform.dismissedCount()).Equal(1)
		gt.Value(t, platform.dismissed[0]).Equal(first.ID)
		gt.Bool(t, d.Visible("case-CASE-0001")).True()
	})

	t.Run("distinct keys coexist", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()
		gt.Bool(t, d.Dispatch(ctx, testIntent("update-CASE-0001-1000"))).True()

		gt.Bool(t, d.Visible("case-CASE-0001")).True()
		gt.Bool(t, d.Visible("update-CASE-0001-1000")).True()
		gt.Number(t, platform.dismissedCount()).Equal(0)
	})

	t.Run("a failing platform show leaves nothing visible", func(t *testing.T) {
		platform := &recordPlatform{showErr: errors.New("render failed")}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).False()
		gt.Bool(t, d.Visible("case-CASE-0001")).False()
	})
}

func TestDispatcher_AutoDismiss(t *testing.T) {
	ctx := context.Background()

	t.Run("alerts auto-dismiss after the configured delay", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform, notify.WithDismissAfter(30*time.Millisecond))
		d.RequestPermission(ctx)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()
		gt.Bool(t, d.Visible("case-CASE-0001")).True()

		deadline := time.Now().Add(2 * time.Second)
		for d.Visible("case-CASE-0001") && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		gt.Bool(t, d.Visible("case-CASE-0001")).False()
		gt.Number(t, platform.dismissedCount()).Equal(1)
	})

	t.Run("interaction-required alerts never auto-dismiss", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform, notify.WithDismissAfter(30*time.Millisecond))
		d.RequestPermission(ctx)

		intent := testIntent("case-CASE-0001")
		intent.RequireInteraction = true
		gt.Bool(t, d.Dispatch(ctx, intent)).True()

		time.Sleep(150 * time.Millisecond)
		gt.Bool(t, d.Visible("case-CASE-0001")).True()
		gt.Number(t, platform.dismissedCount()).Equal(0)
	})
}

func TestDispatcher_Click(t *testing.T) {
	ctx := context.Background()

	t.Run("click navigates and consumes exactly once", func(t *testing.T) {
		platform := &recordPlatform{}
		var mu sync.Mutex
		var navigated []types.CaseID
		d := notify.New(platform, notify.WithNavigate(func(id types.CaseID) {
			mu.Lock()
			defer mu.Unlock()
			navigated = append(navigated, id)
		}))
		d.RequestPermission(ctx)

		gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()

		gt.Bool(t, d.Click(ctx, "case-CASE-0001")).True()
		gt.Bool(t, d.Click(ctx, "case-CASE-0001")).False()

		mu.Lock()
		defer mu.Unlock()
		gt.Array(t, navigated).Length(1)
		gt.Value(t, navigated[0]).Equal(types.CaseID("CASE-0001"))
	})

	t.Run("clicking an unknown key is a no-op", func(t *testing.T) {
		d := notify.New(&recordPlatform{})
		d.RequestPermission(ctx)
		gt.Bool(t, d.Click(ctx, "case-CASE-9999")).False()
	})
}

func TestDispatcher_Close(t *testing.T) {
	ctx := context.Background()

	platform := &recordPlatform{}
	d := notify.New(platform)
	d.RequestPermission(ctx)

	gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0001"))).True()
	gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0002"))).True()

	d.Close(ctx)

	gt.Number(t, platform.dismissedCount()).Equal(2)
	gt.Bool(t, d.Dispatch(ctx, testIntent("case-CASE-0003"))).False()
}

func TestDispatcher_HandleCaseEvent(t *testing.T) {
	ctx := context.Background()

	newCase := func(priority types.Priority) *model.Case {
		return &model.Case{
			ID:          "CASE-0001",
			Title:       "API latency spike",
			Description: "p99 over 5s",
			Priority:    priority,
			Status:      types.CaseStatusNew,
		}
	}

	t.Run("creation renders the new-case alert", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		gt.Bool(t, d.HandleCaseEvent(ctx, &model.CaseEvent{Case: newCase(types.PriorityHigh)})).True()

		shown := platform.lastShown()
		gt.Value(t, shown).NotNil().Required()
		gt.Value(t, shown.Intent.DedupeKey).Equal("case-CASE-0001")
		gt.Bool(t, shown.Intent.RequireInteraction).False()
	})

	t.Run("critical creation requires interaction", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		gt.Bool(t, d.HandleCaseEvent(ctx, &model.CaseEvent{Case: newCase(types.PriorityCritical)})).True()

		shown := platform.lastShown()
		gt.Value(t, shown).NotNil().Required()
		gt.Bool(t, shown.Intent.RequireInteraction).True()
		gt.Value(t, shown.Intent.DedupeKey).Equal("case-CASE-0001")
	})

	t.Run("status updates describe the transition and dedupe per update", func(t *testing.T) {
		platform := &recordPlatform{}
		d := notify.New(platform)
		d.RequestPermission(ctx)

		c := newCase(types.PriorityHigh)
		c.Status = types.CaseStatusInProgress
		prev := types.CaseStatusNew

		gt.Bool(t, d.HandleCaseEvent(ctx, &model.CaseEvent{Case: c, PreviousStatus: &prev})).True()

		shown := platform.lastShown()
		gt.Value(t, shown).NotNil().Required()
		gt.Value(t, shown.Intent.Body).Equal(fmt.Sprintf("Status changed to %s (was %s)", types.CaseStatusInProgress, types.CaseStatusNew))
		gt.Bool(t, len(shown.Intent.DedupeKey) > len("update-CASE-0001-")).True()
	})

	t.Run("nil events are ignored", func(t *testing.T) {
		d := notify.New(&recordPlatform{})
		d.RequestPermission(ctx)
		gt.Bool(t, d.HandleCaseEvent(ctx, nil)).False()
		gt.Bool(t, d.HandleCaseEvent(ctx, &model.CaseEvent{})).False()
	})
}

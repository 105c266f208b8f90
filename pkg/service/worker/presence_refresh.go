package worker

import (
	"context"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	slacksvc "github.com/kwikkconnect/kwikkconnect/pkg/service/slack"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// PresenceRefreshWorker reconciles each registered expert's online flag
// with Slack presence, matched by email.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type PresenceRefreshWorker struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	interval     time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewPresenceRefreshWorker creates a new worker for refreshing expert presence
func NewPresenceRefreshWorker(repo interfaces.Repository, slackSvc slacksvc.Service, interval time.Duration) *PresenceRefreshWorker {
	return &PresenceRefreshWorker{
		repo:         repo,
		slackService: slackSvc,
		interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial sync and the
// periodic refresh both run in a goroutine and never block startup.
func (w *PresenceRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("expert presence refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *PresenceRefreshWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("expert presence refresh worker stopped")
}

func (w *PresenceRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Error("initial presence refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("presence refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("expert presence refresh worker context cancelled")
			return
		}
	}
}

// refresh performs a single reconciliation cycle
func (w *PresenceRefreshWorker) refresh(ctx context.Context) error {
	startTime := time.Now()

	users, err := w.slackService.ListUsers(ctx)
	if err != nil {
		// Keep current flags on API failure (graceful degradation)
		return goerr.Wrap(err, "failed to list Slack users")
	}

	onlineByEmail := make(map[string]bool, len(users))
	for _, u := range users {
		if u.Email != "" {
			onlineByEmail[u.Email] = u.Online
		}
	}

	experts, err := w.repo.Expert().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list experts")
	}

	updated := 0
	for _, e := range experts {
		online, known := onlineByEmail[e.Email]
		if !known || e.IsOnline == online {
			continue
		}
		e.IsOnline = online
		if _, err := w.repo.Expert().Put(ctx, e); err != nil {
			return goerr.Wrap(err, "failed to update expert presence", goerr.V("email", e.Email))
		}
		updated++
	}

	logging.Default().Info("expert presence refresh completed",
		"experts", len(experts),
		"updated", updated,
		"duration", time.Since(startTime).String())

	return nil
}

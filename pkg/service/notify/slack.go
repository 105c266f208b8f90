package notify

import (
	"context"
	"fmt"
	"sync"

	slacksvc "github.com/kwikkconnect/kwikkconnect/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
)

// SlackPlatform posts notifications to a Slack channel. Dismissing a
// notification deletes the posted message, so dedupe replacement and
// auto-dismiss behave like desktop alerts.
type SlackPlatform struct {
	mu        sync.Mutex
	svc       slacksvc.Service
	channelID string
	posted    map[string]string // notification ID -> message ts
}

var _ Platform = &SlackPlatform{}

func NewSlackPlatform(svc slacksvc.Service, channelID string) (*SlackPlatform, error) {
	if svc == nil {
		return nil, goerr.New("slack service is required")
	}
	if channelID == "" {
		return nil, goerr.New("slack channel ID is required")
	}
	return &SlackPlatform{
		svc:       svc,
		channelID: channelID,
		posted:    make(map[string]string),
	}, nil
}

func (p *SlackPlatform) Show(ctx context.Context, n *Notification) error {
	text := fmt.Sprintf("*%s*\n%s", n.Intent.Title, n.Intent.Body)
	ts, err := p.svc.PostMessage(ctx, p.channelID, text)
	if err != nil {
		return goerr.Wrap(err, "failed to post notification to Slack",
			goerr.V("dedupe_key", n.Intent.DedupeKey),
		)
	}

	p.mu.Lock()
	p.posted[n.ID] = ts
	p.mu.Unlock()
	return nil
}

func (p *SlackPlatform) Dismiss(ctx context.Context, id string) error {
	p.mu.Lock()
	ts, exists := p.posted[id]
	delete(p.posted, id)
	p.mu.Unlock()

	if !exists {
		return nil
	}
	return p.svc.DeleteMessage(ctx, p.channelID, ts)
}

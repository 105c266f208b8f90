package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// User holds the subset of Slack user info the app cares about
type User struct {
	ID       string
	Name     string
	RealName string
	Email    string
	Online   bool
}

// Service defines the interface for Slack operations
type Service interface {
	// PostMessage posts a message to a channel and returns its timestamp
	PostMessage(ctx context.Context, channelID, text string) (string, error)

	// DeleteMessage removes a previously posted message
	DeleteMessage(ctx context.Context, channelID, ts string) error

	// ListUsers fetches all non-bot users with their presence
	ListUsers(ctx context.Context) ([]*User, error)
}

type service struct {
	client *slack.Client
}

var _ Service = &service{}

// New creates a Slack service with the given bot token
func New(botToken string) (Service, error) {
	if botToken == "" {
		return nil, goerr.New("slack bot token is required")
	}
	return &service{client: slack.New(botToken)}, nil
}

func (s *service) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	_, ts, err := s.client.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post Slack message", goerr.V("channel_id", channelID))
	}
	return ts, nil
}

func (s *service) DeleteMessage(ctx context.Context, channelID, ts string) error {
	if _, _, err := s.client.DeleteMessageContext(ctx, channelID, ts); err != nil {
		return goerr.Wrap(err, "failed to delete Slack message",
			goerr.V("channel_id", channelID),
			goerr.V("ts", ts),
		)
	}
	return nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	slackUsers, err := s.client.GetUsersContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list Slack users")
	}

	users := make([]*User, 0, len(slackUsers))
	for _, su := range slackUsers {
		if su.IsBot || su.Deleted {
			continue
		}
		users = append(users, &User{
			ID:       su.ID,
			Name:     su.Name,
			RealName: su.RealName,
			Email:    su.Profile.Email,
			Online:   su.Presence != "away",
		})
	}
	return users, nil
}

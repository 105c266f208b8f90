package config

import (
	"log/slog"

	slacksvc "github.com/kwikkconnect/kwikkconnect/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for the Slack integration: the alert
// channel used as notification platform and the presence worker source.
type Slack struct {
	botToken     string
	alertChannel string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Sources:     cli.EnvVars("KWIKKCONNECT_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-alert-channel",
			Usage:       "Slack channel ID for case alerts",
			Category:    "Slack",
			Sources:     cli.EnvVars("KWIKKCONNECT_SLACK_ALERT_CHANNEL"),
			Destination: &x.alertChannel,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("alert-channel", x.alertChannel),
	)
}

// AlertChannel returns the configured alert channel ID
func (x *Slack) AlertChannel() string {
	return x.alertChannel
}

// Configure creates the Slack service when a bot token is set.
// Returns nil if Slack is not configured.
func (x *Slack) Configure() (slacksvc.Service, error) {
	if x.botToken == "" {
		return nil, nil
	}
	return slacksvc.New(x.botToken)
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kwikkconnect/kwikkconnect/pkg/cli/config"
	httpctrl "github.com/kwikkconnect/kwikkconnect/pkg/controller/http"
	"github.com/kwikkconnect/kwikkconnect/pkg/repository/memory"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/assistant"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/chat"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/notify"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/worker"
	"github.com/kwikkconnect/kwikkconnect/pkg/usecase"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var presenceInterval time.Duration
	var appCfg *config.AppConfig
	var geminiCfg config.Gemini
	var slackCfg config.Slack
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":4000",
			Sources:     cli.EnvVars("KWIKKCONNECT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to collaboration tuning TOML file",
			Sources:     cli.EnvVars("KWIKKCONNECT_CONFIG"),
			Destination: &configPath,
		},
		&cli.DurationFlag{
			Name:        "presence-interval",
			Usage:       "Expert presence refresh interval",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("KWIKKCONNECT_PRESENCE_INTERVAL"),
			Destination: &presenceInterval,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			cfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load app configuration")
			}
			appCfg = cfg

			sentryClose, err := sentryCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Sentry")
			}
			defer sentryClose()

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			// Notification platform: Slack when fully configured,
			// otherwise the local console
			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack service")
			}

			var platform notify.Platform
			if slackSvc != nil && slackCfg.AlertChannel() != "" {
				p, err := notify.NewSlackPlatform(slackSvc, slackCfg.AlertChannel())
				if err != nil {
					return goerr.Wrap(err, "failed to configure Slack notification platform")
				}
				platform = p
				logger.Info("Slack notification platform enabled", "slack", slackCfg)
			} else {
				platform = notify.NewConsolePlatform(os.Stderr)
				logger.Info("console notification platform enabled")
			}

			dispatcher := notify.New(platform,
				notify.WithDismissAfter(appCfg.DismissAfter()),
			)
			// Headless service: no consent prompt, grant immediately
			dispatcher.RequestPermission(ctx)
			defer dispatcher.Close(ctx)

			uc := usecase.New(repo, usecase.WithNotify(dispatcher))

			// Swarm rooms need the LLM collaborator
			var rooms *chat.Rooms
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ai, err := assistant.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize assistant")
				}
				rooms = chat.NewRooms(ai,
					chat.WithSummaryThreshold(appCfg.Summary.Threshold),
					chat.WithIdleWindow(appCfg.IdleWindow()),
				)
				defer rooms.Close()
				logger.Info("swarm rooms enabled", "gemini", geminiCfg)
			} else {
				logger.Info("Gemini project not configured, swarm room features will be limited")
			}

			// Expert presence worker needs Slack
			if slackSvc != nil {
				presenceWorker := worker.NewPresenceRefreshWorker(repo, slackSvc, presenceInterval)
				if err := presenceWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start presence refresh worker")
				}
				defer presenceWorker.Stop()
			}

			httpOpts := []httpctrl.Options{}
			if rooms != nil {
				httpOpts = append(httpOpts, httpctrl.WithRooms(rooms))
			}
			server := httpctrl.New(uc, httpOpts...)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(sigCtx)
			g.Go(func() error {
				logger.Info("starting HTTP server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "HTTP server failed")
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
}

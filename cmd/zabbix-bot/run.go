package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jonny/zabbix-bot/internal/adapter/inbound/httpserver"
	"github.com/jonny/zabbix-bot/internal/adapter/inbound/slackbot"
	"github.com/jonny/zabbix-bot/internal/adapter/outbound/metrics"
	slacknotifier "github.com/jonny/zabbix-bot/internal/adapter/outbound/notification/slack"
	"github.com/jonny/zabbix-bot/internal/adapter/outbound/zabbix"
	"github.com/jonny/zabbix-bot/internal/config"
	"github.com/jonny/zabbix-bot/internal/domain/service"
	"github.com/jonny/zabbix-bot/pkg/health"
	"github.com/jonny/zabbix-bot/pkg/version"
)

// run wires the bot from a validated config and blocks until SIGINT/SIGTERM.
func run(parent context.Context, cfg *config.Config) error {
	logger, closer := buildLogger(cfg.Logging)
	defer closer.Close()

	// --- Metrics ---
	recorder, err := metrics.NewRecorder()
	if err != nil {
		return fmt.Errorf("creating metrics recorder: %w", err)
	}

	// --- Zabbix ---
	zbx, err := zabbix.NewClient(zabbix.Config{
		URL:          cfg.Zabbix.URL,
		Token:        cfg.Zabbix.APIToken,
		Timeout:      cfg.Zabbix.Timeout,
		AuthMethod:   cfg.Zabbix.AuthMethod,
		ProblemLimit: cfg.Zabbix.ProblemLimit,
	}, logger)
	if err != nil {
		return fmt.Errorf("creating zabbix client: %w", err)
	}

	// --- Notifier ---
	notifier := slacknotifier.NewNotifier(slacknotifier.Config{BotToken: cfg.Slack.BotToken}, logger)

	// --- Domain services ---
	svcCfg := service.Config{
		AllowedChannels: cfg.Slack.AllowedChannels,
		BotUsername:     cfg.Slack.BotUsername,
	}
	guard := service.NewAccessGuard(svcCfg.AllowedChannels, notifier, recorder, logger)
	commands := service.NewCommands(svcCfg, guard, zbx, notifier, recorder, logger)
	coordinator := service.NewCoordinator(guard, zbx, notifier, recorder, logger)

	bot := slackbot.NewBot(slackbot.Config{
		BotToken: cfg.Slack.BotToken,
		AppToken: cfg.Slack.AppToken,
		Debug:    cfg.Slack.Debug,
	}, commands, coordinator, logger)

	// --- Health checker ---
	checker := health.NewChecker()
	checker.Register("zabbix", zbx.HealthCheck)
	checker.Register("slack", bot.HealthCheck)

	// --- Signal handling & startup ---
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Server.MetricsPort > 0 {
		statusServer := httpserver.NewServer(httpserver.Config{
			Port:            cfg.Server.MetricsPort,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			MetricsToken:    cfg.Server.MetricsToken,
		}, checker, recorder.Handler(), logger)
		g.Go(func() error {
			return statusServer.Start(gCtx)
		})
	} else {
		logger.Info("status server disabled")
	}

	g.Go(func() error {
		logger.Info("starting slack bot", "allowed_channels", len(svcCfg.AllowedChannels))
		return bot.Start(gCtx)
	})

	logger.Info("zabbix-bot started", "version", version.String(), "zabbix_url", cfg.Zabbix.URL)

	if err := g.Wait(); err != nil {
		logger.Error("exited with error", "error", err)
		return err
	}
	logger.Info("zabbix-bot stopped")
	return nil
}

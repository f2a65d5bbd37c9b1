package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"telegram-codeforces-bot/internal/bot"
	"telegram-codeforces-bot/internal/telegram"
)

const shutdownTimeout = 20 * time.Second

// Serve runs the bot until SIGINT or SIGTERM. Updates come from the webhook
// when BOT_BASE_URL is set and from long polling otherwise; /healthz is
// served in both modes.
func (rt *Runtime) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tg, err := telegram.NewBot(rt.cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	rt.logger.Infow("authorized on telegram", "bot", tg.Self.UserName)

	service := bot.NewService(
		rt.logger.Named("bot"),
		tg,
		rt.store,
		rt.engine,
		rt.archive,
		rt.cfg.Admins,
		rt.cfg.BlockedHandles,
	)

	secret := ""
	if rt.cfg.WebhookMode() {
		secret = rt.cfg.WebhookSecret
		webhookURL, err := telegram.BuildWebhookURL(rt.cfg.BotBaseURL, secret)
		if err != nil {
			return err
		}
		if err := telegram.SetWebhook(tg, webhookURL); err != nil {
			return err
		}
		rt.logger.Infow("webhook set", "base_url", rt.cfg.BotBaseURL)
	} else if err := telegram.DeleteWebhook(tg); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + rt.cfg.Port,
		Handler:           telegram.NewRouter(secret, service.HandleUpdate, rt.logger.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Infow("bot server listening", "addr", httpServer.Addr, "webhook", secret != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			rt.logger.Warnw("shutdown error", "error", err)
		}
		return nil
	})
	if secret == "" {
		poller := telegram.NewPoller(tg, service.HandleUpdate, rt.cfg.BotWorkers, rt.logger.Named("poller"))
		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	err = g.Wait()
	rt.logger.Infow("shutdown complete")
	return err
}

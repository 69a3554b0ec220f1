package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamidrz1977-bot/jawab-bot/internal/engine"
	h "github.com/hamidrz1977-bot/jawab-bot/internal/http"
	"github.com/hamidrz1977-bot/jawab-bot/internal/notify"
	"github.com/hamidrz1977-bot/jawab-bot/internal/poller"
	"github.com/hamidrz1977-bot/jawab-bot/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	texts, err := a.texts()
	if err != nil {
		return err
	}

	sessions, err := openSessions(ctx, a)
	if err != nil {
		return err
	}
	defer sessions.Close()

	sender, err := openSender(a)
	if err != nil {
		return err
	}
	dispatcher, err := notify.NewDispatcher(sender, notify.DispatcherConfig{
		Timeout:       a.cfg.SendTimeout,
		BroadcastRate: a.cfg.BroadcastRate,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	eng := engine.New(a.cfg, texts, a.catalog, a.repo, sessions, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.NewPoller(a.catalog, a.cfg.CatalogSyncInterval, log).Run(ctx)
	}()

	router := h.NewRouter(h.RouterConfig{
		Plan:               string(a.cfg.Tier.ID),
		WebhookSecret:      a.cfg.WebhookSecret,
		MaxRequestBodySize: a.cfg.MaxRequestBodySize,
	}, eng, dispatcher, log)
	srv := h.NewServer(a.cfg.HTTPPort, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("storebot starting",
			zap.String("port", a.cfg.HTTPPort),
			zap.String("plan", string(a.cfg.Tier.ID)),
			zap.Bool("remote_catalog", a.catalog.Remote()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
	case err := <-errCh:
		stop()
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("pending messages dropped", zap.Error(err))
	}
	wg.Wait()

	log.Info("server exited")
	return nil
}

func openSessions(ctx context.Context, a *app) (session.Store, error) {
	opts := []session.Option{session.WithTTL(a.cfg.SessionTTL)}

	storeType := session.StoreType(a.cfg.SessionStore)
	if storeType == session.StoreTypeRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts = append(opts, session.WithRedisClient(client))
	}

	store, err := session.NewStore(storeType, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store %q: %w", a.cfg.SessionStore, err)
	}
	return store, nil
}

func openSender(a *app) (notify.Sender, error) {
	if a.cfg.BotToken == "" {
		a.log.Warn("TELEGRAM_BOT_TOKEN not set, replies are only logged")
		return notify.NewLogSender(a.log), nil
	}
	sender, err := notify.NewTelegramSender(a.cfg.BotToken, tgbotapi.APIEndpoint, a.cfg.SendTimeout, a.log)
	if err != nil {
		return nil, err
	}
	a.log.Info("connected to bot api", zap.String("bot", sender.BotName()))
	return sender, nil
}

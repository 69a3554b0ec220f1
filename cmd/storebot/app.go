package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamidrz1977-bot/jawab-bot/internal/catalog"
	"github.com/hamidrz1977-bot/jawab-bot/internal/config"
	"github.com/hamidrz1977-bot/jawab-bot/internal/i18n"
	"github.com/hamidrz1977-bot/jawab-bot/internal/logger"
	"github.com/hamidrz1977-bot/jawab-bot/internal/repository"
)

// app holds the pieces every subcommand needs.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	repo    *repository.Repository
	catalog *catalog.Loader
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load(nil)

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := repo.RunMigrations(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	loader := catalog.NewLoader(repo, catalog.Options{
		Remote:  cfg.RemoteCatalog(),
		FeedURL: cfg.SheetURL,
		Timeout: cfg.FeedTimeout,
		Logger:  log,
	})

	return &app{cfg: cfg, log: log, repo: repo, catalog: loader}, nil
}

// texts builds the localization table: environment first, then LOCALE_FILE.
func (a *app) texts() (*i18n.Table, error) {
	lookups := []i18n.Lookup{i18n.EnvLookup}
	if a.cfg.LocaleFile != "" {
		file, err := i18n.LoadFile(a.cfg.LocaleFile)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, file)
	}
	return i18n.New(a.cfg.BrandName, lookups...), nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

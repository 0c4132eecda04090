package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/adx/internal/auth"
	"github.com/desertthunder/adx/internal/repositories"
	"github.com/desertthunder/adx/internal/services"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var tiktok services.AdsService
	if svc, err := services.NewTikTokService(services.TikTokOpts{
		ClientKey:    config.Credentials.TikTok.ClientKey,
		ClientSecret: config.Credentials.TikTok.ClientSecret,
		RedirectURI:  config.Credentials.TikTok.RedirectURI,
		BaseURL:      config.Ads.BaseURL,
		RateLimit:    config.Ads.RateLimit,
	}); err == nil {
		tiktok = svc
	}

	var session *auth.Manager
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		session = auth.NewManager(auth.ManagerOpts{
			Store:   repositories.NewTokenRepository(db),
			Service: tiktok,
			Logger:  logger,
		})
	} else {
		logger.Warn("failed to open token database", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: tiktok,
		Session: session,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "adx",
		Usage:    "Create and submit TikTok ads from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

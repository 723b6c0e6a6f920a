//go:build wireinject

package di

import (
	"log/slog"
	"os"

	"github.com/google/wire"

	"push-attach/internal/adapter/console"
	"push-attach/internal/adapter/discord"
	"push-attach/internal/adapter/httpapi"
	"push-attach/internal/adapter/httpfetch"
	"push-attach/internal/adapter/logging"
	"push-attach/internal/adapter/metrics"
	"push-attach/internal/adapter/presenters"
	"push-attach/internal/adapter/staging"
	"push-attach/internal/app"
	"push-attach/internal/config"
	"push-attach/internal/domain/ports"
	"push-attach/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		metrics.NewRecorder,
		wire.Bind(new(ports.Recorder), new(*metrics.Recorder)),
		provideFetcher,
		wire.Bind(new(ports.ImageFetcher), new(*httpfetch.Fetcher)),
		provideStagingDir,
		wire.Bind(new(ports.AttachmentStager), new(*staging.Dir)),
		provideJanitor,
		wire.Bind(new(app.Sweeper), new(*staging.Janitor)),
		providePresenter,
		provideResolverConfig,
		usecase.NewAttachmentResolver,
		usecase.NewDelivery,
		wire.Bind(new(httpapi.Deliverer), new(*usecase.Delivery)),
		provideServer,
		wire.Bind(new(app.HTTPServer), new(*httpapi.Server)),
		provideSchedule,
		app.New,
	)
	return nil, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewSlog(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

func provideFetcher(cfg *config.Config, logger ports.Logger) *httpfetch.Fetcher {
	return httpfetch.New(httpfetch.Options{
		Timeout:   cfg.AttachmentTimeout,
		MaxBytes:  cfg.MaxImageBytes,
		UserAgent: cfg.UserAgent,
	}, logger)
}

func provideStagingDir(cfg *config.Config, logger ports.Logger) (*staging.Dir, error) {
	return staging.NewDir(cfg.StagingDir, logger)
}

func provideJanitor(cfg *config.Config, dir *staging.Dir, logger ports.Logger) *staging.Janitor {
	return staging.NewJanitor(dir, cfg.StagingTTL, logger)
}

func providePresenter(cfg *config.Config, logger ports.Logger) ports.Presenter {
	var webhook ports.Presenter
	if cfg.DiscordWebhookURL != "" {
		webhook = discord.NewWebhook(cfg.DiscordWebhookURL, cfg.PresenterTimeout, logger)
	}
	return presenters.NewFanout(logger, console.NewPresenter(logger), webhook)
}

func provideResolverConfig(cfg *config.Config) usecase.AttachmentResolverConfig {
	return usecase.AttachmentResolverConfig{Timeout: cfg.AttachmentTimeout}
}

func provideServer(cfg *config.Config, deliverer httpapi.Deliverer, recorder *metrics.Recorder, logger ports.Logger) (*httpapi.Server, error) {
	return httpapi.NewServer(httpapi.Config{
		ListenAddr:     cfg.HTTPAddr,
		Deliverer:      deliverer,
		MetricsHandler: recorder.Handler(),
		Logger:         logger,
	})
}

func provideSchedule(cfg *config.Config) string {
	return cfg.JanitorSchedule
}

package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"push-attach/internal/domain/ports"
)

// HTTPServer is the part of the ingest server the App drives.
type HTTPServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Sweeper reclaims stale staged attachments.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// App manages the lifecycle of the ingest server and the staging janitor.
type App struct {
	cron     *cron.Cron
	server   HTTPServer
	sweeper  Sweeper
	logger   ports.Logger
	schedule string
}

// New constructs an App instance.
func New(server HTTPServer, sweeper Sweeper, logger ports.Logger, schedule string) *App {
	return &App{
		cron:     cron.New(),
		server:   server,
		sweeper:  sweeper,
		logger:   logger,
		schedule: schedule,
	}
}

// Run sweeps once, then serves HTTP and runs the janitor schedule until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJob(); err != nil {
		return err
	}

	a.sweep(ctx)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.logger.Info(groupCtx, "starting http server")
		return a.server.Start()
	})

	group.Go(func() error {
		a.logger.Info(groupCtx, "starting janitor", "cron", a.schedule)
		a.cron.Start()

		<-groupCtx.Done()

		shutdownErr := a.server.Shutdown(context.Background())

		stopCtx := a.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(5 * time.Second):
		}
		a.logger.Info(context.Background(), "janitor stopped")
		return shutdownErr
	})

	return group.Wait()
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		a.sweep(ctx)
	})
	return err
}

func (a *App) sweep(ctx context.Context) {
	if _, err := a.sweeper.Sweep(ctx, time.Now()); err != nil {
		a.logger.Error(ctx, "staging sweep failed", "error", err)
	}
}

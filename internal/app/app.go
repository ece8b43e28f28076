package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/0FL01/docker-pg-dump-auto/internal/adapter/compressor"
	"github.com/0FL01/docker-pg-dump-auto/internal/adapter/notifier"
	"github.com/0FL01/docker-pg-dump-auto/internal/adapter/runtime"
	"github.com/0FL01/docker-pg-dump-auto/internal/config"
	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
	"github.com/0FL01/docker-pg-dump-auto/internal/infrastructure/logger"
	"github.com/0FL01/docker-pg-dump-auto/internal/infrastructure/scheduler"
	"github.com/0FL01/docker-pg-dump-auto/internal/usecase"
)

type App struct {
	config       *config.Config
	logger       *logger.Logger
	orchestrator *usecase.Orchestrator
	notifier     domain.Notifier
}

func New(cfg *config.Config) (*App, error) {
	return newApp(cfg, runtime.NewDocker())
}

func newApp(cfg *config.Config, rt domain.Runtime) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.LogFile())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)
	log.Infof("Found %d target(s) configured", len(cfg.Targets))

	// The backup directory is the one fatal precondition: without it no
	// target can be processed at all.
	if err := os.MkdirAll(cfg.Backup.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	var notify domain.Notifier
	if cfg.Notify.Telegram.Enabled {
		notify, err = notifier.NewTelegram(&cfg.Notify.Telegram)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		log.Infof("✓ Telegram notifications enabled")
	}

	targets := make([]domain.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, domain.Target{Name: t.Name, User: t.User})
	}

	comp := compressor.NewGzip()
	retention := domain.RetentionPolicy{MaxAgeDays: cfg.Backup.RetentionDays}

	availability := usecase.NewAvailability(rt, log, cfg.Backup.CommandTimeout)
	dumper := usecase.NewDumper(rt, comp, log, cfg.Backup.Dir, cfg.Backup.CommandTimeout, time.Now)
	validator := usecase.NewValidator(log)
	pruner := usecase.NewPruner(log, cfg.Backup.Dir, comp.Extension(), time.Now)

	orchestrator := usecase.NewOrchestrator(
		targets, availability, dumper, validator, pruner,
		retention, log, cfg.Backup.Dir, time.Now,
	)

	return &App{
		config:       cfg,
		logger:       log,
		orchestrator: orchestrator,
		notifier:     notify,
	}, nil
}

// Run executes one backup run, or keeps repeating runs on a cron spec
// when app.schedule is set. The returned code is the process exit code:
// zero only when no target failed.
func (a *App) Run(ctx context.Context) (int, error) {
	if a.config.App.Schedule == "" {
		report := a.runOnce(ctx)
		if report.Stats.Failure > 0 {
			return 1, nil
		}
		return 0, nil
	}

	sched := scheduler.New(func(err error) {
		a.logger.Errorf("Scheduled run error: %v", err)
	})

	a.logger.Infof("Scheduling backup runs: %s", a.config.App.Schedule)
	if err := sched.Schedule(a.config.App.Schedule, func(ctx context.Context) error {
		report := a.runOnce(ctx)
		if report.Stats.Failure > 0 {
			return fmt.Errorf("%d target(s) failed", report.Stats.Failure)
		}
		return nil
	}); err != nil {
		return 1, fmt.Errorf("failed to schedule backup runs: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	<-ctx.Done()
	return 0, nil
}

func (a *App) runOnce(ctx context.Context) domain.RunReport {
	report := a.orchestrator.Run(ctx)

	if a.notifier != nil {
		if err := a.notifier.Notify(ctx, report); err != nil {
			a.logger.Errorf("Failed to send notification: %v", err)
		}
	}

	return report
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down...")
	a.logger.Close()
}

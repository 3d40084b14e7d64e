package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/config"
	"github.com/phrazzld/scry-cards/internal/domain/srs"
	"github.com/phrazzld/scry-cards/internal/extract"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/platform/postgres"
	"github.com/phrazzld/scry-cards/internal/platform/sqlite"
	"github.com/phrazzld/scry-cards/internal/service"
	"github.com/phrazzld/scry-cards/internal/stats"
	"github.com/phrazzld/scry-cards/internal/store"
)

// application holds the shared dependencies of a command and releases them on
// cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	cardStore   store.CardStore
	cardService *service.CardService
}

// loadConfig loads the configuration and sets up logging for one invocation.
func loadConfig(env *cliEnv) (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	if env.configPath != "" {
		cfg, err = config.LoadFrom(env.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log, env.stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log = log.With(slog.String("run_id", uuid.NewString()))

	log.Debug("configuration loaded",
		slog.String("store_driver", cfg.Store.Driver),
		slog.String("log_level", cfg.Log.Level))

	return cfg, log, nil
}

// newApplication loads the configuration, opens the configured card store and
// builds the card service on top of it.
func newApplication(ctx context.Context, env *cliEnv) (*application, error) {
	cfg, log, err := loadConfig(env)
	if err != nil {
		return nil, err
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return nil, err
	}

	cardStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	cardService, err := service.NewCardService(cardStore, opts, log)
	if err != nil {
		_ = cardStore.Close()
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		cardStore:   cardStore,
		cardService: cardService,
	}, nil
}

// openStore opens the card store selected by cfg.Driver, migrating it to the
// latest schema.
func openStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (store.CardStore, error) {
	switch cfg.Driver {
	case "postgres":
		s, err := postgres.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres card store: %w", err)
		}
		return s, nil
	default:
		path, err := cfg.ResolveSQLitePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve card database path: %w", err)
		}
		s, err := sqlite.Open(ctx, path, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open card database %s: %w", path, err)
		}
		return s, nil
	}
}

// serviceOptions translates the configuration into service options.
func serviceOptions(cfg *config.Config) (service.Options, error) {
	model, err := srs.NewRecallModel(srs.NewParams(srs.ParamsConfig{Decay: cfg.SRS.Decay}))
	if err != nil {
		return service.Options{}, fmt.Errorf("invalid recall model: %w", err)
	}

	day := 24 * time.Hour
	return service.Options{
		Extract: extract.Options{
			SkipInvalid: cfg.Extract.SkipInvalid,
			Workers:     cfg.Extract.Workers,
		},
		Stats: stats.Params{
			MatureIntervalDays: cfg.Stats.MatureIntervalDays,
			WeekHorizon:        time.Duration(cfg.Stats.WeekHorizonDays) * day,
			MonthHorizon:       time.Duration(cfg.Stats.MonthHorizonDays) * day,
			HistogramBins:      cfg.Stats.HistogramBins,
		},
		Model: model,
	}, nil
}

// cleanup releases the card store.
func (app *application) cleanup() {
	if app.cardStore != nil {
		if err := app.cardStore.Close(); err != nil {
			app.logger.Error("error closing card store", slog.String("error", err.Error()))
		}
	}
}

package root

import (
	"context"
	"fmt"

	"homequest/internal/config"
	"homequest/internal/engine"
	"homequest/internal/logger"
	"homequest/internal/storage"
)

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Named("cli").Debug(ctx, "database opened", logger.String("path", cfg.DBPath))

	svc := engine.NewService(db,
		engine.WithClock(engine.SystemClock{Location: loc}),
		engine.WithLogger(logger.Get()),
	)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup, nil
}

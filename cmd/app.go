package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"broad-babel/core/config"
	"broad-babel/core/database"
	"broad-babel/core/logger"
	"broad-babel/core/source"
	"broad-babel/core/storage"
	"broad-babel/feature/lookup"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   storage.Client
	fetcher *source.Fetcher
	db      *gorm.DB
	engine  *lookup.Engine
}

// newApp loads configuration and builds the logger, storage client and
// source fetcher. Nothing touches the network yet.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg}

	if cfg.Storage.Enabled {
		a.store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	// Only the embedded drivers read a downloaded file. An explicit path
	// replaces the cache location so checks verify the file in use.
	if cfg.Database.IsSQLite() {
		srcCfg := cfg.Source
		if cfg.Database.Path != "" && cfg.Database.Path != ":memory:" {
			srcCfg.CacheDir = filepath.Dir(cfg.Database.Path)
			srcCfg.FileName = filepath.Base(cfg.Database.Path)
		}
		a.fetcher, err = source.NewFetcher(srcCfg, a.store, cfg.Storage.Bucket, logg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure source: %w", err)
		}
	}

	return a, nil
}

// connect opens the lookup database, downloading the source first when no
// explicit sqlite path is configured, and builds the lookup engine.
func (a *app) connect(ctx context.Context, reg prometheus.Registerer) error {
	dbCfg := a.cfg.Database
	if dbCfg.IsSQLite() && dbCfg.Path == "" {
		path, err := a.fetcher.Ensure(ctx)
		if err != nil {
			return fmt.Errorf("failed to retrieve lookup database: %w", err)
		}
		dbCfg.Path = path
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	a.db = db

	schema, err := lookup.SchemaFromConfig(ctx, db, a.cfg.Lookup)
	if err != nil {
		return fmt.Errorf("failed to load lookup schema: %w", err)
	}

	a.engine = lookup.NewEngine(db, schema,
		lookup.WithLogger(a.logger),
		lookup.WithMetrics(lookup.NewMetrics(reg)),
	)
	a.logger.Debug("Connected to lookup database",
		zap.String("driver", dbCfg.Driver),
		zap.String("table", schema.Table()),
	)
	return nil
}

// sourceObjects lists the objects the bucket is expected to hold.
func (a *app) sourceObjects() []string {
	if a.cfg.Source.Object == "" {
		return nil
	}
	return []string{a.cfg.Source.Object}
}

func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}

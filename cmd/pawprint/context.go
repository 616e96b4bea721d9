package main

import (
	"log/slog"
	"time"

	"pawprint/internal/config"
	"pawprint/internal/dtdd"
	"pawprint/internal/logging"
	"pawprint/internal/search"
	"pawprint/internal/tmdb"
	"pawprint/internal/ttlcache"
	"pawprint/internal/watched"
)

// commandContext lazily loads configuration and builds shared collaborators
// for subcommands.
type commandContext struct {
	configFlag *string

	cfg        *config.Config
	configPath string
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.configPath = resolvedPath
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// buildPipeline wires the catalog client, annotator, watched store, and
// orchestrator from configuration. The caller owns closing the store.
func (c *commandContext) buildPipeline() (*tmdb.Client, *dtdd.Client, *watched.Store, *search.Orchestrator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, nil, nil, nil, err
	}

	catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cache := ttlcache.New(time.Duration(cfg.DTDD.CacheTTLDays) * 24 * time.Hour)
	annotator, err := dtdd.New(cfg.DTDD.APIKey, cfg.DTDD.BaseURL, cache, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := watched.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	orchestrator := search.New(catalog, annotator, store, logger,
		search.WithTargetResults(cfg.Search.TargetResults),
		search.WithAnnotationBudget(cfg.Search.AnnotationBudget))

	return catalog, annotator, store, orchestrator, nil
}

package config

import (
	"os"
	"strings"
)

// Environment variables that override file values when the file leaves the
// corresponding key empty. Keys, not URLs: secrets stay out of config files.
const (
	EnvTMDBAPIKey = "PAWPRINT_TMDB_API_KEY"
	EnvDTDDAPIKey = "PAWPRINT_DTDD_API_KEY"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeDTDD()
	c.normalizeSearch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	dataDir, err := expandPath(c.Paths.DataDir)
	if err != nil {
		return err
	}
	c.Paths.DataDir = dataDir
	c.Paths.Bind = strings.TrimSpace(c.Paths.Bind)
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = strings.TrimSpace(os.Getenv(EnvTMDBAPIKey))
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeDTDD() {
	c.DTDD.APIKey = strings.TrimSpace(c.DTDD.APIKey)
	if c.DTDD.APIKey == "" {
		c.DTDD.APIKey = strings.TrimSpace(os.Getenv(EnvDTDDAPIKey))
	}
	c.DTDD.BaseURL = strings.TrimRight(strings.TrimSpace(c.DTDD.BaseURL), "/")
	if c.DTDD.CacheTTLDays <= 0 {
		c.DTDD.CacheTTLDays = 7
	}
}

func (c *Config) normalizeSearch() {
	if c.Search.TargetResults <= 0 {
		c.Search.TargetResults = 20
	}
	if c.Search.AnnotationBudget <= 0 {
		c.Search.AnnotationBudget = 25
	}
	if c.Search.DefaultUserID <= 0 {
		c.Search.DefaultUserID = 1
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

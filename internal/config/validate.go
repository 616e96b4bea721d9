package config

import (
	"fmt"

	"pawprint/internal/services"
)

// Validate checks settings the application cannot run without. The TMDB key is
// mandatory; the DTDD key is optional and its absence merely degrades safety
// checks to unknown.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if c.Paths.Bind == "" {
		return fmt.Errorf("%w: paths.bind must not be empty", services.ErrConfiguration)
	}
	if c.DTDD.BaseURL == "" {
		return fmt.Errorf("%w: dtdd.base_url must not be empty", services.ErrConfiguration)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("%w: tmdb.api_key is required (set it in the config file or %s)",
			services.ErrConfiguration, EnvTMDBAPIKey)
	}
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("%w: tmdb.base_url must not be empty", services.ErrConfiguration)
	}
	return nil
}

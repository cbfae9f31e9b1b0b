package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidOutputFormats lists the accepted values of the output key.
var ValidOutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// ValidOnError lists the accepted values of the on_error key.
var ValidOnError = []string{OnErrorStop, OnErrorSkip}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidOutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of: %s)",
			c.OutputFormat, strings.Join(ValidOutputFormats, ", "))
	}
	if !slices.Contains(ValidOnError, c.OnError) {
		return fmt.Errorf("invalid on_error policy %q (expected one of: %s)",
			c.OnError, strings.Join(ValidOnError, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvPipelineWorkers       = "MANIFEST_PIPELINE_WORKERS"
	EnvPipelineSubmitWorkers = "MANIFEST_PIPELINE_SUBMIT_WORKERS"
	EnvPipelineCallTimeout   = "MANIFEST_PIPELINE_CALL_TIMEOUT"
)

// PipelineConfig bounds the batch fan-out and the per-call timeout applied
// to extraction, reference store, and submission calls.
type PipelineConfig struct {
	Workers       int    `toml:"workers"`
	SubmitWorkers int    `toml:"submit_workers"`
	CallTimeout   string `toml:"call_timeout"`
}

// CallTimeoutDuration returns CallTimeout as a time.Duration.
func (c *PipelineConfig) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.SubmitWorkers != 0 {
		c.SubmitWorkers = overlay.SubmitWorkers
	}
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.SubmitWorkers == 0 {
		c.SubmitWorkers = 4
	}
	if c.CallTimeout == "" {
		c.CallTimeout = "60s"
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvPipelineSubmitWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SubmitWorkers = n
		}
	}
	if v := os.Getenv(EnvPipelineCallTimeout); v != "" {
		c.CallTimeout = v
	}
}

func (c *PipelineConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.SubmitWorkers < 1 {
		return fmt.Errorf("submit_workers must be positive")
	}
	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gradlink/clientcore/logger"
)

// Config is the full GradLink client configuration.
type Config struct {
	App      AppConfig      `yaml:"app" mapstructure:"app"`
	API      APIConfig      `yaml:"api" mapstructure:"api"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Identity IdentityConfig `yaml:"identity" mapstructure:"identity"`
	Logging  logger.Config  `yaml:"logging" mapstructure:"logging"`
	Tracing  TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
}

// AppConfig identifies the application instance.
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// APIConfig configures the connection to the GradLink backend.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	TLSSkipVerify bool          `yaml:"tls_skip_verify" mapstructure:"tls_skip_verify"`
	TLSCAFile     string        `yaml:"tls_ca_file" mapstructure:"tls_ca_file"`
}

// StorageConfig configures where durable session state lives.
type StorageConfig struct {
	// Dir is the directory holding the credential file. Empty means a
	// per-user default under the OS config directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// EncryptionKey, when set, seals the credential file at rest with
	// AES-256-GCM. Empty leaves the file in plaintext JSON.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
}

// CredentialsPath returns the file backing durable session storage.
func (c StorageConfig) CredentialsPath() string {
	return filepath.Join(c.Dir, "session.json")
}

// IdentityConfig tunes the identity refresh controller.
type IdentityConfig struct {
	StaleThreshold time.Duration `yaml:"stale_threshold" mapstructure:"stale_threshold"`
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure    bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio" mapstructure:"sample_ratio"`
}

// ApplyDefaults fills unset fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "gradlink"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Environment == "development" {
		c.App.Debug = true
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Storage.Dir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.Storage.Dir = filepath.Join(dir, c.App.Name)
		} else {
			c.Storage.Dir = "." + c.App.Name
		}
	}
	if c.Identity.StaleThreshold <= 0 {
		c.Identity.StaleThreshold = 5 * time.Minute
	}
	if c.Tracing.SampleRatio <= 0 {
		c.Tracing.SampleRatio = 1.0
	}
	c.Logging.ApplyDefaults()
}

// Validate verifies the configuration is complete and coherent.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.App.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("app.environment must be one of [development, staging, production] (got: %s)", c.App.Environment)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1] (got: %g)", c.Tracing.SampleRatio)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

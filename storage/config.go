package storage

import "fmt"

// Provider names for the built-in backends.
const (
	ProviderFile          = "file"
	ProviderMemory        = "memory"
	ProviderEncryptedFile = "encrypted-file"
)

// Config selects and configures a storage backend.
type Config struct {
	// Provider is the backend name: "file" or "memory".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Path is the backing file for the file providers.
	Path string `yaml:"path" mapstructure:"path"`

	// EncryptionKey is the passphrase sealing values at rest. Required for
	// the encrypted-file provider.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderFile
	}
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderFile:
		if c.Path == "" {
			return fmt.Errorf("storage: path is required for the file provider")
		}
	case ProviderEncryptedFile:
		if c.Path == "" {
			return fmt.Errorf("storage: path is required for the encrypted-file provider")
		}
		if c.EncryptionKey == "" {
			return fmt.Errorf("storage: encryption_key is required for the encrypted-file provider")
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("storage: unknown provider %q", c.Provider)
	}
	return nil
}

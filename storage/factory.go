package storage

import (
	"fmt"

	"github.com/gradlink/clientcore/logger"
)

// Factory creates a Store implementation from config.
type Factory func(cfg Config, log *logger.Logger) (Store, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory for the given provider
// name. Implementation files call this in an init function.
func RegisterFactory(name string, f Factory) {
	factories[name] = f
}

// New creates a Store based on the given Config. The Provider field selects
// the backend.
func New(cfg Config, log *logger.Logger) (Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, ok := factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("storage: unsupported provider %q (not registered)", cfg.Provider)
	}

	l := log.WithComponent("storage")
	l.Debug("initializing store", map[string]interface{}{"provider": cfg.Provider})
	return f(cfg, l)
}

func init() {
	RegisterFactory(ProviderFile, func(cfg Config, log *logger.Logger) (Store, error) {
		return NewFileStore(cfg.Path)
	})
	RegisterFactory(ProviderMemory, func(cfg Config, log *logger.Logger) (Store, error) {
		return NewMemoryStore(), nil
	})
}

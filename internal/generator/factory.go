package generator

import (
	"fmt"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

// ProviderFactory is a function that creates a Generator from provider config.
type ProviderFactory func(cfg *config.GeneratorConfig) (port.Generator, error)

// registry of generation provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generation provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a Generator from config using the registered factory.
// The credential check happens here so a misconfigured deployment fails at
// startup, before any attempt is made.
func NewGenerator(cfg *config.GeneratorConfig) (port.Generator, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrConfigurationMissing
	}
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

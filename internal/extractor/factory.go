package extractor

import (
	"fmt"

	"qalib/internal/config"
	"qalib/internal/port"
)

// ProviderFactory is a function that creates an Extractor from a provider config.
type ProviderFactory func(cfg *config.ExtractorProviderConfig) (port.Extractor, error)

// registry of extraction provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extraction provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates an Extractor from a provider config using the registered factory.
func NewExtractor(cfg *config.ExtractorProviderConfig) (port.Extractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extraction provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

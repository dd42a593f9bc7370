package llm

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ProviderSettings carries what a chat provider factory needs.
type ProviderSettings struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatProviderFactory builds a ChatProvider from settings.
type ChatProviderFactory func(settings ProviderSettings) (ChatProvider, error)

// Registry holds the mapping between provider names and their factories.
type Registry struct {
	factories map[string]ChatProviderFactory
	logger    *slog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		factories: make(map[string]ChatProviderFactory),
		logger:    logger.With("component", "provider_registry"),
	}
}

// NewDefaultRegistry returns a registry with every built-in chat provider.
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(OpenAIProviderName, NewOpenAIChatProvider)
	r.Register(AnthropicProviderName, NewAnthropicChatProvider)
	return r
}

// Register adds a provider factory. Registering a name twice overwrites it.
func (r *Registry) Register(name string, factory ChatProviderFactory) {
	name = strings.ToLower(name)
	if _, exists := r.factories[name]; exists {
		r.logger.Warn("provider already registered, overwriting", "provider", name)
	}
	r.factories[name] = factory
	r.logger.Debug("registered chat provider", "provider", name)
}

// Build instantiates the named provider.
func (r *Registry) Build(name string, settings ProviderSettings) (ChatProvider, error) {
	factory, exists := r.factories[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("no chat provider registered for %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	provider, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s chat provider: %w", name, err)
	}
	return provider, nil
}

// Names lists registered providers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

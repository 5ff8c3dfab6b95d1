// Package agent resolves which text generation backend serves each
// advisor. Resolution order: per-advisor override, then the active
// provider, then gemini.
package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"business_consultant/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                   `yaml:"active_provider"`
	Models         map[string]string        `yaml:"models"`
	Advisors       map[string]AdvisorConfig `yaml:"advisors"`
}

type AdvisorConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Optional override
	Description string `yaml:"description"`
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"openai":   &llm.OpenAIProvider{},
			"deepseek": &llm.DeepSeekProvider{},
			"ollama":   &llm.OllamaProvider{},
		},
	}
}

// GeneratorFor returns the backend serving the named advisor, bound to
// the configured model. The bound generator injects the model option and
// routes system prompts through AdaptInstructions on every call.
func (m *Manager) GeneratorFor(advisorName string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := m.config.ActiveProvider
	model := ""

	// 1. Check for advisor-specific override
	if ac, ok := m.config.Advisors[advisorName]; ok {
		if ac.Provider != "" {
			name = ac.Provider
		}
		model = ac.Model
	}

	provider, ok := m.providers[name]
	if !ok {
		// 2. Fallback
		name = "gemini"
		provider = m.providers[name]
	}

	// 3. Per-provider default model unless the advisor pinned one
	if model == "" {
		model = m.config.Models[name]
	}

	return &boundGenerator{provider: provider, model: model}
}

// SetActiveProvider switches the global default backend.
func (m *Manager) SetActiveProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// ActiveProvider reports the current global default backend.
func (m *Manager) ActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists the registered backend names, sorted.
func (m *Manager) Available() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// boundGenerator pairs a provider with its resolved model so callers
// never deal in option maps.
type boundGenerator struct {
	provider llm.Provider
	model    string
}

func (g *boundGenerator) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	merged := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		merged[k] = v
	}
	if g.model != "" {
		if _, ok := merged["model"]; !ok {
			merged["model"] = g.model
		}
	}

	adapted := g.provider.AdaptInstructions(systemPrompt)

	return g.provider.GenerateResponse(ctx, prompt, adapted, merged)
}

func (g *boundGenerator) AdaptInstructions(raw string) string {
	return g.provider.AdaptInstructions(raw)
}

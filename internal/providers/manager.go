package providers

import (
	"fmt"
	"strings"

	"paper2startup/internal/config"
)

// ProviderRef names a provider and, optionally, a model: "groq" or "ollama:llama3.1".
type ProviderRef struct {
	Raw   string
	Name  string
	Model string
}

func ParseProviderRef(raw string) ProviderRef {
	raw = strings.TrimSpace(raw)
	ref := ProviderRef{Raw: raw, Name: raw}
	if name, model, ok := strings.Cut(raw, ":"); ok {
		ref.Name = strings.TrimSpace(name)
		ref.Model = strings.TrimSpace(model)
	}
	ref.Name = strings.ToLower(ref.Name)
	if ref.Name == "" {
		ref.Name = "groq"
	}
	return ref
}

// NewProvider builds the single completion backend the process uses.
func NewProvider(cfg config.Config) (LLMProvider, ProviderRef, error) {
	ref := ParseProviderRef(cfg.LLMProvider)
	model := cfg.Model
	if ref.Model != "" {
		model = ref.Model
	}
	switch ref.Name {
	case "groq":
		return NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, model), ref, nil
	case "ollama":
		return NewOllamaProvider(cfg.OllamaURL, model), ref, nil
	case "mock":
		return NewMockProvider(), ref, nil
	default:
		return nil, ref, fmt.Errorf("unsupported provider: %s", ref.Raw)
	}
}

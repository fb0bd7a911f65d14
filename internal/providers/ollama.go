package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const DefaultOllamaURL = "http://localhost:11434"

// OllamaProvider runs completions against a local Ollama server.
type OllamaProvider struct {
	model   string
	llm     llms.Model
	initErr error
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	p := &OllamaProvider{model: model}
	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		p.initErr = fmt.Errorf("ollama client: %w", err)
		return p
	}
	p.llm = llm
	return p
}

func (o *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	info := ProviderInfo{Name: "ollama", Model: o.model}
	if o.initErr != nil {
		return GenerateResponse{}, info, o.initErr
	}
	text, err := generateChat(ctx, o.llm, req)
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("ollama %s: %w", req.Operation, err)
	}
	return GenerateResponse{Text: text}, info, nil
}

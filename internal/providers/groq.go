package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to Groq's OpenAI-compatible chat completions API.
type GroqProvider struct {
	model   string
	llm     llms.Model
	initErr error
}

// NewGroqProvider never fails: a missing key or bad client setup is reported by
// every Generate call instead, so the process can still start and serve the UI.
func NewGroqProvider(apiKey, baseURL, model string) *GroqProvider {
	p := &GroqProvider{model: model}
	if strings.TrimSpace(apiKey) == "" {
		p.initErr = ErrMissingAPIKey
		return p
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGroqBaseURL
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		p.initErr = fmt.Errorf("groq client: %w", err)
		return p
	}
	p.llm = llm
	return p
}

func (g *GroqProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	info := ProviderInfo{Name: "groq", Model: g.model}
	if g.initErr != nil {
		return GenerateResponse{}, info, g.initErr
	}
	text, err := generateChat(ctx, g.llm, req)
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("groq %s: %w", req.Operation, err)
	}
	return GenerateResponse{Text: text}, info, nil
}

// generateChat sends req as a system message followed by a human message.
func generateChat(ctx context.Context, llm llms.Model, req GenerateRequest) (string, error) {
	msgs := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	resp, err := llm.GenerateContent(ctx, msgs)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

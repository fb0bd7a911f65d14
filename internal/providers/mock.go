package providers

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider returns deterministic offline completions keyed by operation.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1"}
	var text string
	switch strings.ToLower(req.Operation) {
	case "summarize_chunk":
		text = fmt.Sprintf("Mock section summary (%d words in).", len(strings.Fields(req.Prompt)))
	case "compress_summary":
		text = "Mock overview: the paper proposes a method and evaluates it."
	case "use_cases":
		text = "- Mock use case: package the method as a developer API."
	case "pitch_deck":
		text = "Problem: mock\nSolution: mock\nMarket: mock\nProduct: mock\nTeam: mock\nWhy Now: mock"
	case "monetization":
		text = "- Mock model: usage-based subscription."
	default:
		text = "Mock response."
	}
	return GenerateResponse{Text: text}, info, nil
}

package analysis

import (
	"fmt"
	"strings"
)

const (
	OpSummarizeChunk  = "summarize_chunk"
	OpCompressSummary = "compress_summary"
	OpUseCases        = "use_cases"
	OpPitchDeck       = "pitch_deck"
	OpMonetization    = "monetization"
)

// The 500-word limit is only asked for in the prompt; nothing truncates the reply.
const overviewWordCap = 500

func chunkSummaryPrompt(part int, chunk string) string {
	return fmt.Sprintf("Summarize this research paper section (Part %d) in simple plain language:\n\n%s", part, chunk)
}

func compressPrompt(summaries []string) string {
	return fmt.Sprintf("Combine and compress these summaries into a single plain-language overview, no longer than %d words:\n\n", overviewWordCap) +
		strings.Join(summaries, "\n")
}

func useCasesPrompt(overview string) string {
	return "Suggest practical startup use cases for this research:\n\n" + overview
}

func pitchDeckPrompt(overview string) string {
	return "Write a draft pitch deck outline (Problem, Solution, Market, Product, Team, Why Now):\n\n" + overview
}

func monetizationPrompt(overview string) string {
	return "Suggest possible monetization models for a startup based on this research:\n\n" + overview
}

package analysis

import "paper2startup/internal/completion"

type Stage string

const (
	StageAwaitingUpload      Stage = "awaiting_upload"
	StageExtracting          Stage = "extracting"
	StageNoText              Stage = "no_text"
	StagePerChunkSummarizing Stage = "per_chunk_summarizing"
	StageCompressing         Stage = "compressing"
	StageDeriving            Stage = "deriving"
	StageDone                Stage = "done"
)

const (
	MsgNoFile = "No file uploaded."
	MsgNoText = "No text found in paper."
)

// Report is the terminal state of one analysis. Stage is one of
// StageAwaitingUpload (no document), StageNoText or StageDone.
type Report struct {
	RequestID string
	Stage     Stage
	Chunks    int
	// ExtractErr is set when the document could not be read.
	ExtractErr error

	Summary      completion.Result
	UseCases     completion.Result
	PitchDeck    completion.Result
	Monetization completion.Result
}

// Outputs returns the four display strings in UI order: summary, use cases,
// pitch deck, monetization.
func (r Report) Outputs() [4]string {
	switch r.Stage {
	case StageAwaitingUpload:
		return [4]string{MsgNoFile, "", "", ""}
	case StageDone:
		return [4]string{
			r.Summary.Display(),
			r.UseCases.Display(),
			r.PitchDeck.Display(),
			r.Monetization.Display(),
		}
	default:
		return [4]string{MsgNoText, "", "", ""}
	}
}

// Failures counts the artifacts that carry an inline error.
func (r Report) Failures() int {
	n := 0
	for _, res := range []completion.Result{r.Summary, r.UseCases, r.PitchDeck, r.Monetization} {
		if res.Failed() {
			n++
		}
	}
	return n
}

package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paper2startup/internal/completion"
	"paper2startup/internal/logging"
	"paper2startup/internal/util"
)

type Extractor interface {
	ExtractFile(path string) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, req completion.Request) completion.Result
}

type Recorder interface {
	ObserveAnalysis(outcome string, chunks int)
}

type Options struct {
	ChunkWords int
	// SummaryConcurrency above 1 summarizes chunks through a bounded pool.
	// Results are still collected in chunk order.
	SummaryConcurrency int
	Logger             *zap.Logger
	Metrics            Recorder
}

// Orchestrator runs extract → chunk → summarize → compress → derive for one
// document at a time. It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	extractor   Extractor
	completer   Completer
	chunkWords  int
	concurrency int
	logger      *zap.Logger
	metrics     Recorder
}

func New(extractor Extractor, completer Completer, opts Options) *Orchestrator {
	if opts.ChunkWords <= 0 {
		opts.ChunkWords = util.DefaultChunkWords
	}
	if opts.SummaryConcurrency <= 0 {
		opts.SummaryConcurrency = 1
	}
	return &Orchestrator{
		extractor:   extractor,
		completer:   completer,
		chunkWords:  opts.ChunkWords,
		concurrency: opts.SummaryConcurrency,
		logger:      logging.OrNop(opts.Logger),
		metrics:     opts.Metrics,
	}
}

// Analyze never fails: an empty path, an unreadable document and every failed
// completion are folded into the returned Report.
func (o *Orchestrator) Analyze(ctx context.Context, path string) Report {
	rep := Report{RequestID: uuid.NewString(), Stage: StageAwaitingUpload}
	ctx = completion.WithRequestID(ctx, rep.RequestID)
	log := o.logger.With(zap.String("request_id", rep.RequestID))
	start := time.Now()
	defer func() {
		if o.metrics != nil {
			o.metrics.ObserveAnalysis(string(rep.Stage), rep.Chunks)
		}
		log.Info("analysis finished",
			zap.String("stage", string(rep.Stage)),
			zap.Int("chunks", rep.Chunks),
			zap.Int("failed_artifacts", rep.Failures()),
			zap.Duration("duration", time.Since(start)))
	}()

	if path == "" {
		return rep
	}

	rep.Stage = StageExtracting
	text, err := o.extractor.ExtractFile(path)
	if err != nil {
		log.Warn("pdf extraction failed", zap.Error(err))
		rep.Stage = StageNoText
		rep.ExtractErr = err
		return rep
	}
	chunks := util.ChunkWords(text, o.chunkWords)
	if len(chunks) == 0 {
		log.Warn("pdf has no extractable text")
		rep.Stage = StageNoText
		rep.ExtractErr = util.ErrNoExtractableText
		return rep
	}
	rep.Chunks = len(chunks)

	rep.Stage = StagePerChunkSummarizing
	log.Info("summarizing chunks", zap.Int("chunks", len(chunks)), zap.Int("words", util.WordCount(text)))
	summaries := o.summarizeChunks(ctx, chunks)

	rep.Stage = StageCompressing
	rendered := make([]string, len(summaries))
	for i, s := range summaries {
		rendered[i] = s.Display()
	}
	rep.Summary = o.completer.Complete(ctx, completion.Request{
		Operation: OpCompressSummary,
		Prompt:    compressPrompt(rendered),
	})

	rep.Stage = StageDeriving
	overview := rep.Summary.Display()
	rep.UseCases = o.completer.Complete(ctx, completion.Request{Operation: OpUseCases, Prompt: useCasesPrompt(overview)})
	rep.PitchDeck = o.completer.Complete(ctx, completion.Request{Operation: OpPitchDeck, Prompt: pitchDeckPrompt(overview)})
	rep.Monetization = o.completer.Complete(ctx, completion.Request{Operation: OpMonetization, Prompt: monetizationPrompt(overview)})

	rep.Stage = StageDone
	return rep
}

func (o *Orchestrator) summarizeChunks(ctx context.Context, chunks []string) []completion.Result {
	out := make([]completion.Result, len(chunks))
	summarize := func(i int) {
		out[i] = o.completer.Complete(ctx, completion.Request{
			Operation: OpSummarizeChunk,
			Prompt:    chunkSummaryPrompt(i+1, chunks[i]),
		})
	}

	if o.concurrency == 1 || len(chunks) == 1 {
		for i := range chunks {
			summarize(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range chunks {
		g.Go(func() error {
			summarize(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paper2startup/internal/logging"
	"paper2startup/internal/providers"
	"paper2startup/internal/storage"
)

// ErrorMarker prefixes the inline text that replaces a failed completion.
const ErrorMarker = "⚠️ Error: "

type Request struct {
	Operation string
	// System overrides the client's system instruction when set.
	System string
	Prompt string
}

// Result is the outcome of one completion call. Exactly one of Text and Err is
// meaningful.
type Result struct {
	Text string
	Err  error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Display renders the result for people and for downstream prompts: the
// completion text, or ErrorMarker followed by the failure message.
func (r Result) Display() string {
	if r.Err != nil {
		return ErrorMarker + r.Err.Error()
	}
	return r.Text
}

type Auditor interface {
	Insert(ctx context.Context, rec storage.LLMCallRecord) error
}

type Recorder interface {
	ObserveCompletion(operation, status string, d time.Duration)
}

type requestIDKey struct{}

// WithRequestID tags ctx so audit rows of one analysis can be grouped.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client wraps an LLMProvider so that no failure escapes a call.
type Client struct {
	provider providers.LLMProvider
	system   string
	logger   *zap.Logger
	audit    Auditor
	metrics  Recorder
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = logging.OrNop(l) } }

func WithAuditor(a Auditor) Option { return func(c *Client) { c.audit = a } }

func WithRecorder(r Recorder) Option { return func(c *Client) { c.metrics = r } }

func NewClient(provider providers.LLMProvider, systemInstruction string, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		system:   systemInstruction,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete issues one call and always returns; provider errors and panics end up
// in Result.Err.
func (c *Client) Complete(ctx context.Context, req Request) (res Result) {
	system := req.System
	if system == "" {
		system = c.system
	}
	start := time.Now()
	var info providers.ProviderInfo

	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("provider panic: %v", r)}
		}
		c.record(ctx, req.Operation, info, res, time.Since(start))
	}()

	resp, info, err := c.provider.Generate(ctx, providers.GenerateRequest{
		Operation: req.Operation,
		System:    system,
		Prompt:    req.Prompt,
	})
	if err != nil {
		return Result{Err: err}
	}
	return Result{Text: strings.TrimSpace(resp.Text)}
}

func (c *Client) record(ctx context.Context, operation string, info providers.ProviderInfo, res Result, d time.Duration) {
	status := "ok"
	errType := ""
	if res.Err != nil {
		status = "error"
		errType = string(providers.ClassifyError(res.Err))
	}
	if c.metrics != nil {
		c.metrics.ObserveCompletion(operation, status, d)
	}

	fields := []zap.Field{
		zap.String("request_id", RequestID(ctx)),
		zap.String("operation", operation),
		zap.String("provider", info.Name),
		zap.String("model", info.Model),
		zap.Duration("duration", d),
	}
	if res.Err != nil {
		c.logger.Warn("completion failed", append(fields, zap.String("error_type", errType), zap.Error(res.Err))...)
	} else {
		c.logger.Debug("completion ok", append(fields, zap.Int("chars", len(res.Text)))...)
	}

	if c.audit == nil {
		return
	}
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	// The call's own ctx may already be done; the row should still land.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := c.audit.Insert(auditCtx, storage.LLMCallRecord{
		CallID:       uuid.NewString(),
		RequestID:    requestID,
		Operation:    operation,
		ProviderName: info.Name,
		Model:        info.Model,
		Status:       status,
		ErrorType:    errType,
		DurationMs:   d.Milliseconds(),
	}); err != nil {
		c.logger.Warn("audit llm call failed", zap.String("operation", operation), zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"paper2startup/internal/analysis"
	"paper2startup/internal/api"
	"paper2startup/internal/completion"
	"paper2startup/internal/config"
	"paper2startup/internal/extract"
	"paper2startup/internal/logging"
	"paper2startup/internal/metrics"
	"paper2startup/internal/providers"
	"paper2startup/internal/storage"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("paper2startup", cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("paper2startup stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	m := metrics.New()

	provider, ref, err := providers.NewProvider(cfg)
	if err != nil {
		return err
	}
	if ref.Name == "groq" && !cfg.HasGroqKey() {
		logger.Warn("GROQ_API_KEY is not set; every completion will fail")
	}

	opts := []completion.Option{completion.WithLogger(logger), completion.WithRecorder(m)}
	if cfg.AuditEnabled() {
		db, err := storage.OpenDB(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := storage.NewLLMAuditRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, completion.WithAuditor(repo))
		logger.Info("completion audit enabled")
	}

	client := completion.NewClient(provider, cfg.SystemPrompt, opts...)
	orch := analysis.New(extract.NewExtractor(logger), client, analysis.Options{
		ChunkWords:         cfg.ChunkWords,
		SummaryConcurrency: cfg.SummaryConcurrency,
		Logger:             logger,
		Metrics:            m,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(cfg, orch, logger, m).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	model := cfg.Model
	if ref.Model != "" {
		model = ref.Model
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("paper2startup listening",
			zap.String("addr", cfg.Addr),
			zap.String("provider", ref.Name),
			zap.String("model", model))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

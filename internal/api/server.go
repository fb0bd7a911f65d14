package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"paper2startup/internal/analysis"
	"paper2startup/internal/config"
	"paper2startup/internal/logging"
	"paper2startup/internal/metrics"
	"paper2startup/internal/util"
)

const uploadField = "file"

var errNotPDF = errors.New("only .pdf files are accepted")

type Analyzer interface {
	Analyze(ctx context.Context, path string) analysis.Report
}

type Server struct {
	cfg      config.Config
	analyzer Analyzer
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewServer(cfg config.Config, analyzer Analyzer, logger *zap.Logger, m *metrics.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		analyzer: analyzer,
		logger:   logging.OrNop(logger),
		metrics:  m,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET /{$}", s.handleIndex)
	s.handle(mux, "POST /analyze", s.handleAnalyzePage)
	s.handle(mux, "POST /api/analyze", s.handleAnalyzeJSON)
	s.handle(mux, "GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return withCORS(mux)
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	if s.metrics == nil {
		mux.Handle(pattern, h)
		return
	}
	route := strings.TrimSuffix(pattern[strings.IndexByte(pattern, ' ')+1:], "{$}")
	mux.Handle(pattern, s.metrics.Middleware(route, h))
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, http.StatusOK, newPageView([4]string{}, ""))
}

func (s *Server) handleAnalyzePage(w http.ResponseWriter, r *http.Request) {
	rep, status, err := s.analyzeUpload(w, r)
	if err != nil {
		s.writePage(w, status, newPageView([4]string{}, toAPIError(status, err).Message))
		return
	}
	s.writePage(w, http.StatusOK, newPageView(rep.Outputs(), ""))
}

type analyzeResponse struct {
	RequestID    string `json:"request_id"`
	Stage        string `json:"stage"`
	Summary      string `json:"summary"`
	UseCases     string `json:"use_cases"`
	PitchDeck    string `json:"pitch_deck"`
	Monetization string `json:"monetization"`
}

func (s *Server) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	rep, status, err := s.analyzeUpload(w, r)
	if err != nil {
		writeErr(w, status, err)
		return
	}
	out := rep.Outputs()
	writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID:    rep.RequestID,
		Stage:        string(rep.Stage),
		Summary:      out[0],
		UseCases:     out[1],
		PitchDeck:    out[2],
		Monetization: out[3],
	})
}

// analyzeUpload spools the optional uploaded PDF to a temp file, analyzes it and
// removes it again. A request without a file is analyzed as "no document".
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (analysis.Report, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	fh, err := uploadedFile(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return analysis.Report{}, http.StatusRequestEntityTooLarge, fmt.Errorf("upload too large: %w", err)
		}
		return analysis.Report{}, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err)
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	// Once triggered, an analysis runs to completion even if the client leaves.
	ctx := context.WithoutCancel(r.Context())
	if fh == nil {
		return s.analyzer.Analyze(ctx, ""), http.StatusOK, nil
	}
	if !util.HasExt(fh.Filename, ".pdf") {
		return analysis.Report{}, http.StatusBadRequest, errNotPDF
	}

	path, digest, err := s.spoolUpload(fh)
	if err != nil {
		return analysis.Report{}, http.StatusInternalServerError, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("remove spooled upload", zap.String("path", path), zap.Error(err))
		}
	}()
	s.logger.Info("paper uploaded",
		zap.String("filename", fh.Filename),
		zap.Int64("bytes", fh.Size),
		zap.String("sha256", digest))

	return s.analyzer.Analyze(ctx, path), http.StatusOK, nil
}

// uploadedFile returns the uploaded file, or nil when the request carries none.
func uploadedFile(r *http.Request) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if files := r.MultipartForm.File[uploadField]; len(files) > 0 {
		return files[0], nil
	}
	if fh, ok := firstSingleFile(r.MultipartForm.File); ok {
		return fh, nil
	}
	return nil, nil
}

func (s *Server) spoolUpload(fh *multipart.FileHeader) (path, digest string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := s.cfg.UploadDir
	if dir != "" {
		if err := util.EnsureDir(dir); err != nil {
			return "", "", err
		}
	}
	tmp, err := os.CreateTemp(dir, "upload-*.pdf")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	dst, sum := util.TeeSHA256(tmp)
	if _, err := io.Copy(dst, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", "", fmt.Errorf("close upload: %w", err)
	}
	return tmp.Name(), sum(), nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func (s *Server) writePage(w http.ResponseWriter, code int, v pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := renderPage(w, v); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	switch {
	case errors.Is(err, errNotPDF):
		return apiError{Code: "P2S-API-4002", Message: "Only PDF files can be analyzed."}
	case status == http.StatusRequestEntityTooLarge:
		return apiError{Code: "P2S-API-4013", Message: "The uploaded file is too large."}
	case status == http.StatusBadRequest:
		return apiError{Code: "P2S-API-4001", Message: "Invalid upload. Choose a PDF file and retry."}
	case status >= 500:
		return apiError{Code: "P2S-API-5000", Message: "Internal server error. Please retry or check service logs."}
	default:
		return apiError{Code: "P2S-API-4000", Message: "Request failed."}
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

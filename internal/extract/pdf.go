package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"paper2startup/internal/logging"
	"paper2startup/internal/util"
)

// DisplayPrefix starts the string shown in place of text when a PDF cannot be read.
const DisplayPrefix = "Error reading PDF: "

var ErrReadPDF = errors.New("read pdf")

// Extractor pulls plain text out of PDF files page by page.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logging.OrNop(logger)}
}

// ExtractFile returns the text of every page in document order, each followed by a
// newline, trimmed. Pages without extractable text (scans, blank pages) contribute
// nothing. Any parse failure is returned wrapped in ErrReadPDF.
func (e *Extractor) ExtractFile(path string) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrReadPDF, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadPDF, err)
	}
	defer f.Close()

	var sb strings.Builder
	pages := r.NumPage()
	skipped := 0
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			skipped++
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrReadPDF, i, err)
		}
		pageText = util.SanitizeText(pageText)
		if pageText == "" {
			skipped++
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = strings.TrimSpace(sb.String())
	e.logger.Debug("pdf extracted",
		zap.String("path", path),
		zap.Int("pages", pages),
		zap.Int("skipped_pages", skipped),
		zap.Int("words", util.WordCount(text)))
	return text, nil
}

// DisplayText renders an extraction outcome for people: the text itself, or the
// "Error reading PDF: " sentinel carrying the failure message.
func DisplayText(text string, err error) string {
	if err != nil {
		return DisplayPrefix + strings.TrimPrefix(err.Error(), ErrReadPDF.Error()+": ")
	}
	return text
}

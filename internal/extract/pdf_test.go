package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// writeTestPDF writes a minimal single-font PDF with one page per entry in pages.
// An empty entry produces a page with an empty content stream.
func writeTestPDF(t *testing.T, pages ...string) string {
	t.Helper()
	n := len(pages)
	// 1 catalog, 2 pages, 3 font, then a page object and a content object per page.
	objects := make([]string, 0, 3+2*n)
	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestExtractFileReadsPagesInOrder(t *testing.T) {
	path := writeTestPDF(t, "Hello research", "Second page")
	text, err := NewExtractor(zaptest.NewLogger(t)).ExtractFile(path)
	require.NoError(t, err)
	require.Contains(t, text, "Hello research")
	require.Contains(t, text, "Second page")
	require.Less(t, strings.Index(text, "Hello"), strings.Index(text, "Second"))
	require.Equal(t, strings.TrimSpace(text), text)
}

func TestExtractFileSkipsPagesWithoutText(t *testing.T) {
	path := writeTestPDF(t, "", "Only words")
	text, err := NewExtractor(nil).ExtractFile(path)
	require.NoError(t, err)
	require.Equal(t, "Only words", text)
}

func TestExtractFileKeepsTextStartingWithError(t *testing.T) {
	path := writeTestPDF(t, "Error bars are reported")
	text, err := NewExtractor(nil).ExtractFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "Error bars"))
}

func TestExtractFileMissingPath(t *testing.T) {
	text, err := NewExtractor(nil).ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.ErrorIs(t, err, ErrReadPDF)
	require.Empty(t, text)
	require.True(t, strings.HasPrefix(DisplayText(text, err), DisplayPrefix))
}

func TestExtractFileNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just some text, no pdf structure"), 0o600))
	_, err := NewExtractor(nil).ExtractFile(path)
	require.ErrorIs(t, err, ErrReadPDF)
	require.True(t, strings.HasPrefix(DisplayText("", err), "Error reading PDF: "))
}

func TestDisplayTextPassesTextThrough(t *testing.T) {
	require.Equal(t, "body", DisplayText("body", nil))
}

package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// MinExtractedTextLength is the minimum text length required for a
	// successful extraction. Shorter output usually means a scanned or
	// image-only PDF.
	MinExtractedTextLength = 50
)

// IsPDF reports whether data carries the PDF file signature. The browser's
// file-picker filter is not a boundary, so the signature is checked again
// server-side.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// ExtractText extracts plain text from an in-memory PDF
func ExtractText(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", fmt.Errorf("not a PDF file")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep whatever the rest yields
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := sb.String()
	if len(strings.TrimSpace(text)) < MinExtractedTextLength {
		return "", fmt.Errorf("extracted text is too short (likely a scanned or image-only PDF)")
	}

	return text, nil
}

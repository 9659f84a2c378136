// Package pdftext extracts plain text from PDF invoices.
package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Extract returns the plain text of the file at path. PDF files go through
// the pdf reader page by page; anything else is treated as pre-extracted
// text and returned as-is, which keeps the parser testable without binary
// fixtures.
func Extract(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read bill text %s: %w", path, err)
		}
		return string(raw), nil
	}

	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("extract text from %s: %w", path, err)
	}
	return buf.String(), nil
}

// Package ingestion turns uploaded resumes into plain text.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxResumeChars bounds the stored resume text, counted in characters.
const MaxResumeChars = 5000

var (
	ErrEmptyUpload       = errors.New("empty upload")
	ErrUnsupportedFormat = errors.New("unsupported resume format")
)

var pdfMagic = []byte("%PDF-")

// Extractor pulls text out of an uploaded document.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// DocumentExtractor reads PDF files and passes UTF-8 text files through.
type DocumentExtractor struct{}

func (DocumentExtractor) Extract(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return extractPDF(data)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".txt", ".md", "":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedFormat)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// extractPDF concatenates the text of every page. The pdf package panics on
// some malformed inputs, which is reported as an error.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return string(b), nil
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

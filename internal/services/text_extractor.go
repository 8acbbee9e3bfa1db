package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-screener/internal/models"
)

type TextExtractor interface {
	ExtractText(doc *models.ResumeDocument) (string, error)
	SupportedFormats() []string
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (t *textExtractor) SupportedFormats() []string {
	return []string{".pdf", ".docx", ".odt", ".txt"}
}

// ExtractText implements TextExtractor. Every failure, including a parser panic on a
// malformed file, comes back as an *ExtractionError naming the document.
func (t *textExtractor) ExtractText(doc *models.ResumeDocument) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{FileName: doc.FileName, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	ext := strings.ToLower(filepath.Ext(doc.Path))

	switch ext {
	case ".pdf":
		text, err = extractPDF(doc.Path)
	case ".docx":
		text, err = extractWith(doc.Path, docconv.ConvertDocx)
	case ".odt":
		text, err = extractWith(doc.Path, docconv.ConvertODT)
	case ".txt":
		text, err = extractPlain(doc.Path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", &ExtractionError{FileName: doc.FileName, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{FileName: doc.FileName, Err: ErrNoTextContent}
	}

	return text, nil
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep whatever the other pages yield
			continue
		}

		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

func extractWith(filePath string, convert func(io.Reader) (string, map[string]string, error)) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	text, _, err := convert(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	return text, nil
}

func extractPlain(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	return strings.ToValidUTF8(string(content), "�"), nil
}

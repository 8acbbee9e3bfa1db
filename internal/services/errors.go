package services

import (
	"errors"
	"fmt"
)

var (
	ErrModelNotLoaded        = errors.New("model not loaded")
	ErrMissingJobDescription = errors.New("missing job description")
	ErrNoResumes             = errors.New("missing resumes")
	ErrDimensionMismatch     = errors.New("embedding dimension mismatch")
	ErrUnsupportedFormat     = errors.New("unsupported file format")
	ErrNoTextContent         = errors.New("no text content found")
	ErrUnsafeFilename        = errors.New("unsafe filename")
	ErrFileTooLarge          = errors.New("file too large")
)

// ExtractionError reports a document whose text could not be read.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

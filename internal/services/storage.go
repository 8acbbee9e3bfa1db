package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

type StorageService interface {
	SaveFile(fileName string, open func() (io.ReadCloser, error)) (*models.ResumeDocument, error)
	GetFilePath(storedName string) string
	DeleteFile(storedName string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

var reUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename reduces an uploaded name to a safe base name made of
// [A-Za-z0-9._-] only.
func SanitizeFilename(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), "_")
	name = reUnsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")

	if name == "" {
		return "", ErrUnsafeFilename
	}

	return name, nil
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile copies the upload into the upload directory under a unique name.
// Nothing is left on disk when it fails.
func (s *storageService) SaveFile(fileName string, open func() (io.ReadCloser, error)) (*models.ResumeDocument, error) {
	safeName, err := SanitizeFilename(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, fileName)
	}

	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), safeName)
	filePath := s.GetFilePath(storedName)

	// Open source file
	src, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	// Copy file
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.ResumeDocument{
		FileName:   safeName,
		StoredName: storedName,
		Path:       filePath,
	}, nil
}

func (s *storageService) GetFilePath(storedName string) string {
	return filepath.Join(s.uploadPath, storedName)
}

func (s *storageService) DeleteFile(storedName string) error {
	filePath := s.GetFilePath(storedName)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

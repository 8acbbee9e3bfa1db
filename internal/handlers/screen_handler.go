package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/services"
)

const (
	fieldJobDescription     = "job_desc"
	fieldJobDescriptionFile = "job_desc_file"
	fieldResumes            = "resumes"
)

type ScreenHandler struct {
	ranking     services.RankingService
	maxFileSize int64
	logger      *zap.Logger
}

func NewScreenHandler(
	ranking services.RankingService,
	maxFileSize int64,
	logger *zap.Logger,
) *ScreenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScreenHandler{
		ranking:     ranking,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleScreen handles POST /screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jobDescription := h.jobDescription(form)

	uploads := make([]services.ResumeUpload, 0, len(form.File[fieldResumes]))
	for _, fh := range form.File[fieldResumes] {
		uploads = append(uploads, h.resumeUpload(fh))
	}

	resp, err := h.ranking.Screen(c.UserContext(), jobDescription, uploads)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrModelNotLoaded):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Model not loaded",
			})
		case errors.Is(err, services.ErrMissingJobDescription):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing job description",
			})
		case errors.Is(err, services.ErrNoResumes):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing resumes",
			})
		default:
			h.logger.Error("screening failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to screen resumes",
			})
		}
	}

	return c.JSON(resp)
}

// jobDescription prefers the inline field and falls back to the uploaded text file.
func (h *ScreenHandler) jobDescription(form *multipart.Form) string {
	if values := form.Value[fieldJobDescription]; len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		return values[0]
	}

	files := form.File[fieldJobDescriptionFile]
	if len(files) == 0 {
		return ""
	}

	text, err := h.readText(files[0])
	if err != nil {
		h.logger.Warn("failed to read job description file",
			zap.String("file", files[0].Filename),
			zap.Error(err),
		)
		return ""
	}

	return text
}

func (h *ScreenHandler) readText(fh *multipart.FileHeader) (string, error) {
	if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
		return "", services.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return strings.ToValidUTF8(string(content), "�"), nil
}

// resumeUpload defers opening the part until the pipeline stores it, so an oversized
// file fails on its own without rejecting the request.
func (h *ScreenHandler) resumeUpload(fh *multipart.FileHeader) services.ResumeUpload {
	return services.ResumeUpload{
		FileName: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
				return nil, services.ErrFileTooLarge
			}

			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
)

// ResumeUpload is one resume handed to the pipeline. Open is called once, when the
// resume is copied into temporary storage.
type ResumeUpload struct {
	FileName string
	Open     func() (io.ReadCloser, error)
}

// UploadFromPath wraps a file already on disk.
func UploadFromPath(path string) ResumeUpload {
	return ResumeUpload{
		FileName: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

type RankingService interface {
	Screen(ctx context.Context, jobDescription string, uploads []ResumeUpload) (*models.ScreeningResponse, error)
}

type rankingService struct {
	model     *ModelHandle
	storage   StorageService
	extractor TextExtractor
	fields    FieldExtractor
	logger    *zap.Logger
}

func NewRankingService(
	model *ModelHandle,
	storage StorageService,
	extractor TextExtractor,
	fields FieldExtractor,
	logger *zap.Logger,
) RankingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rankingService{
		model:     model,
		storage:   storage,
		extractor: extractor,
		fields:    fields,
		logger:    logger,
	}
}

// Screen scores every resume against the job description and returns them ranked.
// A resume that fails is reported in its own result; only problems with the request
// as a whole are returned as errors.
func (r *rankingService) Screen(ctx context.Context, jobDescription string, uploads []ResumeUpload) (*models.ScreeningResponse, error) {
	embedder, err := r.model.Embedder()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrMissingJobDescription
	}

	if len(uploads) == 0 {
		return nil, ErrNoResumes
	}

	jobVector, err := embedder.Embed(ctx, NormalizeText(jobDescription))
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	r.logger.Info("screening resumes",
		zap.Int("resumes", len(uploads)),
		zap.String("model", embedder.Name()),
	)

	results := make([]models.ResumeResult, 0, len(uploads))
	for _, upload := range uploads {
		if upload.FileName == "" {
			continue
		}
		results = append(results, r.screenResume(ctx, embedder, jobVector, upload))
	}

	models.SortResults(results)

	return &models.ScreeningResponse{Scores: results}, nil
}

// screenResume never panics: a panic from a parser, an embedding client or the
// scorer is reported against this resume only.
func (r *rankingService) screenResume(ctx context.Context, embedder Embedder, jobVector []float32, upload ResumeUpload) (result models.ResumeResult) {
	defer func() {
		if p := recover(); p != nil {
			result = r.failed(upload.FileName, fmt.Errorf("unexpected panic: %v", p))
		}
	}()

	doc, err := r.storage.SaveFile(upload.FileName, upload.Open)
	if err != nil {
		return r.failed(upload.FileName, err)
	}
	defer r.release(doc)

	text, err := r.extractor.ExtractText(doc)
	if err != nil {
		return r.failed(doc.FileName, err)
	}

	vector, err := embedder.Embed(ctx, NormalizeText(text))
	if err != nil {
		return r.failed(doc.FileName, err)
	}

	score, err := SimilarityScore(jobVector, vector)
	if err != nil {
		return r.failed(doc.FileName, err)
	}

	fields := r.fields.Extract(text)

	r.logger.Debug("resume scored",
		zap.String("file", doc.FileName),
		zap.Float64("score", score),
	)

	return models.ResumeResult{
		FileName:     doc.FileName,
		Score:        &score,
		ResumeFields: &fields,
	}
}

func (r *rankingService) failed(fileName string, err error) models.ResumeResult {
	r.logger.Warn("resume processing failed",
		zap.String("file", fileName),
		zap.Error(err),
	)

	return models.ResumeResult{
		FileName: fileName,
		Error:    fmt.Sprintf("Failed to process file: %v", err),
	}
}

func (r *rankingService) release(doc *models.ResumeDocument) {
	if err := r.storage.DeleteFile(doc.StoredName); err != nil {
		r.logger.Error("failed to remove temporary file",
			zap.String("file", doc.StoredName),
			zap.Error(err),
		)
	}
}

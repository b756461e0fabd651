// Package reviews implements the full review path: an uploaded resume is
// stored, run through the analysis pipeline, and deleted again; the caller
// receives the synthesized feedback.
package reviews

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/storage/object"
	"resume-quality/internal/shared/telemetry"
)

var (
	// ErrInvalidInput indicates a missing file or unsupported extension.
	ErrInvalidInput = errors.New("invalid input")
)

// Allowed upload extensions for the review path.
var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".docx": {}, ".txt": {},
}

// Analyzer runs the analysis pipeline over a stored file.
type Analyzer interface {
	Analyze(ctx context.Context, filePath, jobDescription string) (string, error)
}

// Service drives one review: save, analyze, always delete.
type Service struct {
	Store    object.ObjectStore
	Pipeline Analyzer
}

// Review stores the uploaded file, analyzes it, and returns the feedback.
// The stored file is removed on every path out of this function.
func (s *Service) Review(ctx context.Context, userID, fileName string, r io.Reader, jobDescription string) (string, error) {
	if _, ok := allowedExtensions[lowerExt(fileName)]; !ok {
		return "", ErrInvalidInput
	}

	metrics.IncReviewStarted()
	start := time.Now()

	key, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		metrics.IncReviewFailed()
		return "", err
	}
	defer func() {
		if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil {
			telemetry.Warn("review.cleanup_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}()

	path, err := s.Store.Path(key)
	if err != nil {
		metrics.IncReviewFailed()
		return "", err
	}

	feedback, err := s.Pipeline.Analyze(ctx, path, strings.TrimSpace(jobDescription))
	if err != nil {
		metrics.IncReviewFailed()
		return "", err
	}

	metrics.IncReviewCompleted()
	metrics.ObserveReviewDurationMs(float64(time.Since(start).Milliseconds()))
	return feedback, nil
}

func lowerExt(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx:])
}

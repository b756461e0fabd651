package submissions

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-quality/internal/quickscore"
	"resume-quality/internal/shared/storage/object"
)

// Allowed upload extensions for the submission path.
var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {},
}

// Service contains business logic for submissions. ExtractText converts a
// stored file into scoreable text; it is optional, and without it file-only
// submissions are stored unscored text-wise but still run the heuristic over
// the empty string.
type Service struct {
	Repo        SubmissionsRepo
	Store       object.ObjectStore
	Scorer      *quickscore.Scorer
	ExtractText func(ctx context.Context, path string) (string, error)
}

// SubmitInput is one incoming submission. File may be nil when ResumeText is
// supplied.
type SubmitInput struct {
	UserID     string
	TargetRole string
	ResumeText string
	FileName   string
	File       io.Reader
}

// Submit validates the input, stores an uploaded file if present, scores the
// resume, and persists the record.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Submission, error) {
	in.ResumeText = strings.TrimSpace(in.ResumeText)
	in.TargetRole = strings.TrimSpace(in.TargetRole)

	if in.File == nil && in.ResumeText == "" {
		return Submission{}, ErrInvalidInput
	}
	if in.File != nil {
		if _, ok := allowedExtensions[lowerExt(in.FileName)]; !ok {
			return Submission{}, ErrInvalidInput
		}
	}

	sub := Submission{
		ID:         uuid.NewString(),
		UserID:     ownerID(in.UserID),
		ResumeText: in.ResumeText,
		TargetRole: in.TargetRole,
		CreatedAt:  time.Now().UTC(),
	}

	if in.File != nil {
		key, _, _, err := s.Store.Save(ctx, in.UserID, in.FileName, in.File)
		if err != nil {
			return Submission{}, err
		}
		sub.ResumeKey = key
	}

	text := sub.ResumeText
	if text == "" && sub.ResumeKey != "" && s.ExtractText != nil {
		if path, err := s.Store.Path(sub.ResumeKey); err == nil {
			if extracted, err := s.ExtractText(ctx, path); err == nil {
				text = extracted
			}
		}
	}

	result := s.Scorer.Analyze(ctx, text, sub.TargetRole)
	sub.Score = result.Score
	sub.Skills = result.Skills
	sub.Recommendations = result.Recommendations

	if err := s.Repo.Create(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// History returns the user's submissions, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]Submission, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get returns one submission owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (Submission, error) {
	if userID == "" || id == "" {
		return Submission{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// Guest identities carry the middleware's "guest:" prefix and never match a
// users row, so guest submissions are persisted anonymously against the
// nullable user column.
const guestIDPrefix = "guest:"

func ownerID(userID string) string {
	if strings.HasPrefix(userID, guestIDPrefix) {
		return ""
	}
	return userID
}

func lowerExt(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx:])
}

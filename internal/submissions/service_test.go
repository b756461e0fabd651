package submissions

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-quality/internal/quickscore"
)

type fakeStore struct {
	dir   string
	saved []string
}

func (f *fakeStore) Save(_ context.Context, _, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	if err := os.WriteFile(filepath.Join(f.dir, fileName), data, 0o600); err != nil {
		return "", 0, "", err
	}
	f.saved = append(f.saved, fileName)
	return fileName, int64(len(data)), "application/octet-stream", nil
}

func (f *fakeStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(f.dir, key))
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(f.dir, key))
}

func (f *fakeStore) Path(key string) (string, error) {
	return filepath.Join(f.dir, key), nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := &fakeStore{dir: t.TempDir()}
	svc := &Service{
		Repo:   NewMemoryRepo(),
		Store:  store,
		Scorer: quickscore.NewScorer("", "", 0),
	}
	return svc, store
}

func TestSubmitTextScoresAndPersists(t *testing.T) {
	svc, store := newTestService(t)

	sub, err := svc.Submit(context.Background(), SubmitInput{
		UserID:     "user-1",
		TargetRole: "Engineer",
		ResumeText: "python django postgres",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.Score != 70 {
		t.Fatalf("score = %d, want 70", sub.Score)
	}
	if len(store.saved) != 0 {
		t.Fatalf("unexpected store writes: %v", store.saved)
	}

	listed, err := svc.History(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != sub.ID {
		t.Fatalf("history = %+v", listed)
	}
}

func TestSubmitGuestStoredAnonymously(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Submit(context.Background(), SubmitInput{
		UserID:     "guest:abc",
		TargetRole: "Engineer",
		ResumeText: "python developer",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.UserID != "" {
		t.Fatalf("UserID = %q, want anonymous", sub.UserID)
	}

	// The guest identity never owns a history entry.
	listed, err := svc.History(context.Background(), "guest:abc", 20, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("history = %+v", listed)
	}
}

func TestSubmitRejectsMissingInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Submit(context.Background(), SubmitInput{UserID: "u", TargetRole: "r"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitRejectsBadExtension(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Submit(context.Background(), SubmitInput{
		UserID:   "u",
		FileName: "resume.exe",
		File:     strings.NewReader("x"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved = %v", store.saved)
	}
}

func TestSubmitFileUsesExtractedText(t *testing.T) {
	svc, store := newTestService(t)
	svc.ExtractText = func(_ context.Context, path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	sub, err := svc.Submit(context.Background(), SubmitInput{
		UserID:     "user-1",
		TargetRole: "Engineer",
		FileName:   "resume.pdf",
		File:       strings.NewReader("python resume body"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.ResumeKey == "" {
		t.Fatal("missing resume key")
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved = %v", store.saved)
	}
	// "python" from the extracted file content raises the score.
	if sub.Score != 55 {
		t.Fatalf("score = %d, want 55", sub.Score)
	}
}

func TestSubmitFileWithoutExtractorStillScores(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Submit(context.Background(), SubmitInput{
		UserID:     "user-1",
		TargetRole: "Engineer",
		FileName:   "resume.docx",
		File:       strings.NewReader("binary"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// The heuristic runs over empty text and yields the defaults.
	if sub.Score != 40 || len(sub.Skills) != 2 {
		t.Fatalf("got %+v", sub)
	}
}

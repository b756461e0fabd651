package reviews

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeStore struct {
	dir     string
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStore) Save(_ context.Context, _, fileName string, r io.Reader) (string, int64, string, error) {
	if f.saveErr != nil {
		return "", 0, "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := fileName
	if err := os.WriteFile(filepath.Join(f.dir, key), data, 0o600); err != nil {
		return "", 0, "", err
	}
	f.saved = append(f.saved, key)
	return key, int64(len(data)), "text/plain", nil
}

func (f *fakeStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(f.dir, key))
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return os.Remove(filepath.Join(f.dir, key))
}

func (f *fakeStore) Path(key string) (string, error) {
	return filepath.Join(f.dir, key), nil
}

type fakeAnalyzer struct {
	feedback string
	err      error
	gotPath  string
	gotJob   string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, filePath, jobDescription string) (string, error) {
	f.gotPath = filePath
	f.gotJob = jobDescription
	return f.feedback, f.err
}

func TestReviewSuccessDeletesFile(t *testing.T) {
	store := &fakeStore{dir: t.TempDir()}
	analyzer := &fakeAnalyzer{feedback: "looks solid"}
	svc := &Service{Store: store, Pipeline: analyzer}

	out, err := svc.Review(context.Background(), "user-1", "resume.txt", strings.NewReader("text"), "  backend role  ")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if out != "looks solid" {
		t.Fatalf("feedback = %q", out)
	}
	if analyzer.gotJob != "backend role" {
		t.Fatalf("job = %q, want trimmed", analyzer.gotJob)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "resume.txt" {
		t.Fatalf("deleted = %v", store.deleted)
	}
	if analyzer.gotPath != filepath.Join(store.dir, "resume.txt") {
		t.Fatalf("path = %q", analyzer.gotPath)
	}
}

func TestReviewAnalyzerFailureStillDeletesFile(t *testing.T) {
	store := &fakeStore{dir: t.TempDir()}
	analyzer := &fakeAnalyzer{err: errors.New("extraction exploded")}
	svc := &Service{Store: store, Pipeline: analyzer}

	_, err := svc.Review(context.Background(), "user-1", "resume.pdf", strings.NewReader("x"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.deleted) != 1 {
		t.Fatalf("deleted = %v, want exactly one", store.deleted)
	}
}

func TestReviewRejectsExtensionBeforeSaving(t *testing.T) {
	store := &fakeStore{dir: t.TempDir()}
	svc := &Service{Store: store, Pipeline: &fakeAnalyzer{}}

	_, err := svc.Review(context.Background(), "user-1", "resume.exe", strings.NewReader("x"), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved = %v, want none", store.saved)
	}
}

func TestReviewSaveFailure(t *testing.T) {
	store := &fakeStore{dir: t.TempDir(), saveErr: errors.New("disk full")}
	svc := &Service{Store: store, Pipeline: &fakeAnalyzer{}}

	if _, err := svc.Review(context.Background(), "user-1", "resume.txt", strings.NewReader("x"), ""); err == nil {
		t.Fatal("expected error")
	}
	if len(store.deleted) != 0 {
		t.Fatalf("deleted = %v, want none", store.deleted)
	}
}

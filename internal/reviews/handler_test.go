package reviews_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/bootstrap"
	"resume-quality/internal/config"
)

func buildTestApp(t *testing.T) (*bootstrap.App, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	storeDir := t.TempDir()
	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   storeDir,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app, storeDir
}

func multipartBody(t *testing.T, fileField, fileName, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		fw, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestReviewUploadReturnsFeedbackAndCleansUp(t *testing.T) {
	app, storeDir := buildTestApp(t)

	resume := "Led a team. Built and optimized services. Skills: Go, SQL."
	body, contentType := multipartBody(t, "resume_file", "resume.txt", resume,
		map[string]string{"job_description": "Go platform engineer"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// No generative capability in tests, so feedback is the rule-based fallback.
	if !strings.HasPrefix(out.Feedback, "Generative model not configured. Fallback:") {
		t.Fatalf("feedback = %q", out.Feedback)
	}

	// The uploaded file must be removed after analysis.
	var leftover []string
	_ = filepath.Walk(storeDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && info != nil && !info.IsDir() {
			leftover = append(leftover, path)
		}
		return nil
	})
	if len(leftover) != 0 {
		t.Fatalf("stored files not cleaned up: %v", leftover)
	}
}

func TestReviewRejectsUnsupportedExtension(t *testing.T) {
	app, _ := buildTestApp(t)

	body, contentType := multipartBody(t, "resume_file", "resume.odt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
}

func TestReviewRequiresFile(t *testing.T) {
	app, _ := buildTestApp(t)

	body, contentType := multipartBody(t, "resume_file", "", "", map[string]string{"job_description": "jd"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestReviewEmptyDocument(t *testing.T) {
	app, _ := buildTestApp(t)

	body, contentType := multipartBody(t, "resume_file", "resume.txt", "   \n\t  ", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
}

func TestReviewRequiresIdentity(t *testing.T) {
	app, _ := buildTestApp(t)

	body, contentType := multipartBody(t, "resume_file", "resume.txt", "text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.Code)
	}
}

package submissions_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/bootstrap"
	"resume-quality/internal/config"
	"resume-quality/internal/shared/auth"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func formBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
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

func TestSubmitTextRunsHeuristic(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := formBody(t, map[string]string{
		"resume_text": "python django developer",
		"target_role": "Backend Engineer",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var created struct {
		SubmissionID string   `json:"submissionId"`
		Score        int      `json:"score"`
		Skills       []string `json:"skills"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.SubmissionID == "" {
		t.Fatal("missing submissionId")
	}
	if created.Score != 65 {
		t.Fatalf("score = %d, want 65", created.Score)
	}
	if len(created.Skills) != 2 {
		t.Fatalf("skills = %v", created.Skills)
	}
}

func TestSubmitRequiresFileOrText(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := formBody(t, map[string]string{"target_role": "Engineer"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestHistoryBlockedForGuests(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
}

func TestSubmitThenHistoryForAuthenticatedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := buildTestApp(t)

	token, err := auth.SignJWT(auth.Claims{Sub: "user-1", Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	body, contentType := formBody(t, map[string]string{
		"resume_text": "sql analyst with postgres experience",
		"target_role": "Data Analyst",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body = %s", resp.Code, resp.Body.String())
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	reqList.Header.Set("Authorization", "Bearer "+token)
	respList := httptest.NewRecorder()
	app.Router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("history status = %d, body = %s", respList.Code, respList.Body.String())
	}

	var history []struct {
		TargetRole string `json:"targetRole"`
		Score      int    `json:"score"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history len = %d", len(history))
	}
	if history[0].TargetRole != "Data Analyst" || history[0].Score != 45 {
		t.Fatalf("got %+v", history[0])
	}
}

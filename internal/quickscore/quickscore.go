// Package quickscore implements the lightweight scoring path for submissions:
// a deterministic keyword heuristic, with optional delegation to a configured
// generative HTTP endpoint. The two strategies share only the result shape;
// any delegate failure silently falls back to the heuristic.
package quickscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-quality/internal/shared/telemetry"
)

// Result is the quick assessment of one resume.
type Result struct {
	Score           int      `json:"score"`
	Skills          []string `json:"skills"`
	Recommendations []string `json:"recommendations"`
}

// Scorer scores resumes. With no endpoint configured it always uses the
// heuristic; with one it tries the remote delegate first.
type Scorer struct {
	endpointURL string
	apiKey      string
	httpClient  *http.Client
}

// NewScorer constructs a Scorer. endpointURL and apiKey may both be empty,
// which disables delegation.
func NewScorer(endpointURL, apiKey string, timeout time.Duration) *Scorer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Scorer{
		endpointURL: strings.TrimSpace(endpointURL),
		apiKey:      strings.TrimSpace(apiKey),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Analyze scores the resume for the target role. The remote delegate is
// attempted at most once; every delegate failure mode falls back to the
// heuristic.
func (s *Scorer) Analyze(ctx context.Context, resumeText, targetRole string) Result {
	if s.endpointURL != "" && s.apiKey != "" {
		if res, err := s.delegate(ctx, resumeText, targetRole); err == nil {
			return res
		} else {
			telemetry.Warn("quickscore.delegate_failed", map[string]any{"reason": err.Error()})
		}
	}
	return Heuristic(resumeText)
}

type delegateRequest struct {
	Prompt          string  `json:"prompt"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float64 `json:"temperature"`
}

func (s *Scorer) delegate(ctx context.Context, resumeText, targetRole string) (Result, error) {
	payload, err := json.Marshal(delegateRequest{
		Prompt:          buildPrompt(resumeText, targetRole),
		MaxOutputTokens: 1024,
		Temperature:     0.0,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("scorer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("scorer status %d", resp.StatusCode)
	}
	return parsePayload(body)
}

func buildPrompt(resumeText, targetRole string) string {
	if strings.TrimSpace(resumeText) == "" {
		resumeText = "(no text provided)"
	}
	var b strings.Builder
	b.WriteString("You are an expert resume reviewer.\n")
	b.WriteString("Given the resume text and the target job role, extract the candidate's")
	b.WriteString(" key technical and soft skills as a JSON array, produce a short list of")
	b.WriteString(" actionable recommendations to improve the resume for the role, and")
	b.WriteString(" provide a relevance score from 0 to 100 (higher is better).\n\n")
	b.WriteString("Respond ONLY with a JSON object with keys: score (integer), skills (array of strings),")
	b.WriteString(" recommendations (array of strings). Do not add extra explanation.\n\n")
	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\nTarget role: ")
	b.WriteString(targetRole)
	b.WriteString("\n")
	return b.String()
}

// Heuristic scores raw resume text on keyword presence. Base 40, bonuses for
// python/django/SQL terms and length; clamped to [0,100].
func Heuristic(resumeText string) Result {
	lower := strings.ToLower(resumeText)
	score := 40
	skills := []string{}
	recommendations := []string{}

	if strings.Contains(lower, "python") {
		skills = append(skills, "Python")
		score += 15
	}
	if strings.Contains(lower, "django") {
		skills = append(skills, "Django")
		score += 10
	}
	if strings.Contains(lower, "sql") || strings.Contains(lower, "postgres") || strings.Contains(lower, "mysql") {
		skills = append(skills, "SQL")
		score += 5
	}

	if len(strings.Fields(lower)) > 250 {
		score += 10
	} else {
		recommendations = append(recommendations, "Add more detail to experience and projects to increase score")
	}

	if len(skills) == 0 {
		skills = []string{"Communication", "Teamwork"}
		recommendations = append(recommendations, "Highlight technical tools and keywords relevant to your target role")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Result{Score: score, Skills: skills, Recommendations: recommendations}
}

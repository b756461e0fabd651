package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-quality/internal/extract"
)

func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPipelineAnalyzeUnsupportedFormat(t *testing.T) {
	p := &Pipeline{}
	path := writeResume(t, "resume.odt", "whatever")
	_, err := p.Analyze(context.Background(), path, "")
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("err = %v", err)
	}
}

func TestPipelineAnalyzeEmptyDocument(t *testing.T) {
	p := &Pipeline{}
	path := writeResume(t, "resume.txt", "   \n\t ")
	_, err := p.Analyze(context.Background(), path, "")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("err = %v", err)
	}
}

func TestPipelineAnalyzeAllCapabilitiesNilStillSucceeds(t *testing.T) {
	p := &Pipeline{}
	path := writeResume(t, "resume.txt", "Led and built projects. Skills in Go.")
	out, err := p.Analyze(context.Background(), path, "Go developer wanted")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(out, "Generative model not configured. Fallback:") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPipelineAnalyzeFailingCapabilitiesDegrade(t *testing.T) {
	p := &Pipeline{
		Grammar:   &fakeChecker{err: errors.New("grammar down")},
		Embedder:  &fakeEmbedder{err: errors.New("embedder down")},
		Generator: &fakeGenerator{err: errors.New("generator down")},
	}
	path := writeResume(t, "resume.txt", "Managed a platform team for six years.")
	out, err := p.Analyze(context.Background(), path, "platform engineer")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "Feedback generation failed: generator down") {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(out, "Fallback:") {
		t.Fatal("fallback body missing")
	}
}

func TestPipelineAnalyzeFullReport(t *testing.T) {
	resume := "Summary: engineer. Led, built and optimized python django services. Skills, Experience, Projects, Education, LinkedIn, +91."
	gen := &fakeGenerator{out: "looks good"}
	p := &Pipeline{
		Grammar:   &fakeChecker{issues: []GrammarIssue{{RuleID: "R1", Message: "typo"}}},
		Embedder:  &fakeEmbedder{vecs: map[string][]float32{}},
		Generator: gen,
	}
	path := writeResume(t, "resume.txt", resume)
	out, err := p.Analyze(context.Background(), path, "python django engineer")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if out != "looks good" {
		t.Fatalf("got %q", out)
	}
	for _, want := range []string{`"errorsCount":1`, `"missingSections":[]`, `"keywordMatch"`} {
		if !strings.Contains(gen.seen, want) {
			t.Fatalf("prompt missing %q in:\n%s", want, gen.seen)
		}
	}
}

func TestPipelineAnalyzeNoJobSkipsKeywordMatch(t *testing.T) {
	gen := &fakeGenerator{out: "done"}
	p := &Pipeline{Generator: gen}
	path := writeResume(t, "resume.txt", "Built internal tools.")
	if _, err := p.Analyze(context.Background(), path, ""); err != nil {
		t.Fatalf("err = %v", err)
	}
	if strings.Contains(gen.seen, "keywordMatch") {
		t.Fatal("keyword match present without a job description")
	}
}

func TestPipelineAnalyzeDeterministic(t *testing.T) {
	p := &Pipeline{
		Grammar:  &fakeChecker{issues: []GrammarIssue{{RuleID: "R1", Message: "m"}}},
		Embedder: &fakeEmbedder{vecs: map[string][]float32{}},
	}
	path := writeResume(t, "resume.txt", "Delivered and launched features for the platform.")
	first, err := p.Analyze(context.Background(), path, "platform work")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := p.Analyze(context.Background(), path, "platform work")
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, again, first)
		}
	}
}

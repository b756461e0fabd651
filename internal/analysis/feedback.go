package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"resume-quality/internal/shared/telemetry"
)

const (
	promptResumeLimit = 3000
	promptJobLimit    = 2000

	minActionVerbs   = 5
	minWordCount     = 250
	minBulletLines   = 5
	goodCoveragePart = 50.0
)

// FallbackFeedback builds deterministic rule-based suggestions from the
// report. It always yields at least one suggestion and always closes with the
// professional-summary tip.
func FallbackFeedback(resumeText string, report Report, jobText string) string {
	var suggestions []string

	if report.ActionVerbCount < minActionVerbs || report.WordCount < minWordCount {
		suggestions = append(suggestions, "Add measurable achievements for each role (e.g., 'reduced cost by 20%').")
	}
	if len(report.MissingSections) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Add/label these sections: %s.", strings.Join(report.MissingSections, ", ")))
	}
	if report.Grammar.ErrorCount > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Fix grammar & typos (%d found).", report.Grammar.ErrorCount))
	}
	if jobText != "" && report.KeywordMatch != nil {
		if report.KeywordMatch.KeywordCoveragePercent < goodCoveragePart {
			suggestions = append(suggestions, "Improve keyword alignment with the job description.")
		} else {
			suggestions = append(suggestions, "Good keyword coverage.")
		}
	}
	if countBulletLines(resumeText) < minBulletLines {
		suggestions = append(suggestions, "Use concise bullet points (3–6 per role).")
	}
	suggestions = append(suggestions, "Start with a short professional summary highlighting role, experience, and top skills.")

	numbered := make([]string, len(suggestions))
	for i, s := range suggestions {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(numbered, "\n\n")
}

// SynthesizeFeedback produces the final report text. It prefers the
// generative capability and falls back to rule-based suggestions on any
// failure, prefixing the reason; the caller is never left without feedback.
func SynthesizeFeedback(ctx context.Context, gen Generator, resumeText string, report Report, jobText string) string {
	if gen == nil {
		return "Generative model not configured. Fallback:\n\n" + FallbackFeedback(resumeText, report, jobText)
	}

	out, err := gen.Generate(ctx, feedbackPrompt(resumeText, report, jobText))
	if err != nil || strings.TrimSpace(out) == "" {
		reason := "empty response"
		if err != nil {
			reason = err.Error()
		}
		telemetry.Warn("feedback.generate_failed", map[string]any{"reason": reason})
		return fmt.Sprintf("Feedback generation failed: %s\n\nFallback:\n%s", reason, FallbackFeedback(resumeText, report, jobText))
	}
	return strings.TrimSpace(out)
}

func feedbackPrompt(resumeText string, report Report, jobText string) string {
	var b strings.Builder
	b.WriteString("You are a professional resume reviewer. Provide 4-6 actionable, concise suggestions.\n")
	b.WriteString("Focus on structure, clarity, achievements, keywords, formatting.")
	if jobText != "" {
		b.WriteString("\nAlso comment briefly on job match.")
	}

	b.WriteString("\n\nRESUME:\n")
	b.WriteString(truncate(resumeText, promptResumeLimit))

	b.WriteString("\n\nANALYSIS:\n")
	if data, err := json.Marshal(report); err == nil {
		b.Write(data)
	}

	if jobText != "" {
		b.WriteString("\n\nJOB DESCRIPTION:\n")
		b.WriteString(truncate(jobText, promptJobLimit))
	}
	return b.String()
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

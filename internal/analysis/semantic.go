package analysis

import (
	"context"
	"math"
	"regexp"
	"strings"

	"resume-quality/internal/shared/metrics"
)

// Word characters allowed in job keywords; + # - _ are kept so terms like
// "C++" and "C#" survive tokenization.
var keywordPattern = regexp.MustCompile(`[A-Za-z0-9+#_-]+`)

// MatchKeywords computes embedding similarity and keyword coverage between a
// resume and a job description. A nil or failing embedder degrades to
// similarity -1.0 and coverage 0.0; errors never propagate.
func MatchKeywords(ctx context.Context, embedder Embedder, resumeText, jobText string) KeywordMatch {
	if embedder == nil {
		metrics.IncCapabilityDegraded()
		return KeywordMatch{
			SemanticSimilarity: -1.0,
			UnavailableReason:  "embedding model not loaded",
		}
	}

	resumeVec, err := embedder.Encode(ctx, resumeText)
	if err == nil {
		var jobVec []float32
		jobVec, err = embedder.Encode(ctx, jobText)
		if err == nil {
			keywords := jobKeywords(jobText)
			return KeywordMatch{
				SemanticSimilarity:     cosineSimilarity(resumeVec, jobVec),
				KeywordCoveragePercent: coveragePercent(keywords, resumeText),
				JobKeywordCount:        len(keywords),
			}
		}
	}

	metrics.IncCapabilityDegraded()
	return KeywordMatch{
		SemanticSimilarity: -1.0,
		UnavailableReason:  err.Error(),
	}
}

// jobKeywords tokenizes a job description into deduplicated lowercase
// keywords of length > 2.
func jobKeywords(jobText string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range keywordPattern.FindAllString(jobText, -1) {
		if len(tok) <= 2 {
			continue
		}
		lower := strings.ToLower(tok)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// coveragePercent is the share of job keywords appearing as substrings of
// the lowercased resume text. Zero keywords yields 0.0, not a division error.
func coveragePercent(keywords []string, resumeText string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	lower := strings.ToLower(resumeText)
	present := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			present++
		}
	}
	return float64(present) / float64(len(keywords)) * 100.0
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

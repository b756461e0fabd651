// Package analysis implements the resume analysis pipeline: lexical
// analyzers, an embedding-based job match, grammar checking, and feedback
// synthesis. External capabilities (grammar service, embedding model,
// generative model) are injected and may be nil; every analyzer degrades to a
// documented unavailable value instead of failing the pipeline.
package analysis

import "context"

// GrammarResult reports grammar-check output. ErrorCount of -1 signals the
// capability was unavailable; UnavailableReason then says why.
type GrammarResult struct {
	ErrorCount        int      `json:"errorsCount"`
	SampleErrors      []string `json:"sampleErrors"`
	UnavailableReason string   `json:"error,omitempty"`
}

// KeywordMatch reports job-description alignment. SemanticSimilarity of -1.0
// signals the embedding capability was unavailable.
type KeywordMatch struct {
	SemanticSimilarity     float64 `json:"semanticSimilarity"`
	KeywordCoveragePercent float64 `json:"keywordCoveragePercent"`
	JobKeywordCount        int     `json:"jobKeywordCount"`
	UnavailableReason      string  `json:"error,omitempty"`
}

// Report aggregates all analyzer outputs for one resume.
type Report struct {
	WordCount       int           `json:"wordCount"`
	ActionVerbCount int           `json:"actionVerbs"`
	MissingSections []string      `json:"missingSections"`
	Grammar         GrammarResult `json:"grammar"`
	// KeywordMatch is present only when a job description was supplied.
	KeywordMatch *KeywordMatch `json:"keywordMatch,omitempty"`
}

// GrammarIssue is one match reported by a grammar-checking capability.
type GrammarIssue struct {
	RuleID  string
	Message string
}

// GrammarChecker is the grammar-service capability.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]GrammarIssue, error)
}

// Embedder is the sentence-embedding capability.
type Embedder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Generator is the generative-text capability used for feedback synthesis.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

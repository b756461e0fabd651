package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"resume-quality/internal/extract"
)

// ErrEmptyDocument is returned when extraction produced no usable text.
var ErrEmptyDocument = errors.New("no text extracted from resume")

const defaultCapabilityTimeout = 20 * time.Second

// Pipeline is the analysis orchestrator. Capabilities are injected once at
// startup and shared read-only across requests; any of them may be nil, in
// which case the corresponding analyzer degrades.
type Pipeline struct {
	OCR       extract.OCR
	Grammar   GrammarChecker
	Embedder  Embedder
	Generator Generator
	// Timeout bounds each external-capability call. Zero means the default.
	Timeout time.Duration
}

// Analyze extracts text from the file at path, runs all analyzers, and
// returns synthesized feedback. Only extraction failures, unsupported
// formats, and empty documents are fatal; capability failures degrade the
// report instead.
func (p *Pipeline) Analyze(ctx context.Context, filePath, jobDescription string) (string, error) {
	doc, err := extract.Extract(ctx, filePath, p.OCR)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			return "", err
		}
		return "", fmt.Errorf("text extraction: %w", err)
	}

	resumeText := extract.Clean(doc.RawText)
	if resumeText == "" {
		return "", ErrEmptyDocument
	}

	report := p.buildReport(ctx, resumeText, jobDescription)

	genCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	return SynthesizeFeedback(genCtx, p.Generator, resumeText, report, jobDescription), nil
}

// buildReport runs the analyzers. The lexical ones are cheap and run inline;
// grammar and the semantic match are network-bound and run concurrently.
// None of them can fail the report.
func (p *Pipeline) buildReport(ctx context.Context, resumeText, jobDescription string) Report {
	report := Report{
		WordCount:       WordCount(resumeText),
		ActionVerbCount: CountActionVerbs(resumeText),
		MissingSections: MissingSections(resumeText),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(gctx, p.timeout())
		defer cancel()
		report.Grammar = CheckGrammar(callCtx, p.Grammar, resumeText)
		return nil
	})
	if jobDescription != "" {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, p.timeout())
			defer cancel()
			match := MatchKeywords(callCtx, p.Embedder, resumeText, jobDescription)
			report.KeywordMatch = &match
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func (p *Pipeline) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return defaultCapabilityTimeout
}

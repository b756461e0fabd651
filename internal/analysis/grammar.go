package analysis

import (
	"context"
	"fmt"

	"resume-quality/internal/shared/metrics"
)

const (
	maxSampleErrors   = 10
	maxSampleMsgChars = 200
)

// CheckGrammar runs the grammar capability over the text. A nil or failing
// checker degrades to ErrorCount -1 with a reason; errors never propagate.
func CheckGrammar(ctx context.Context, checker GrammarChecker, text string) GrammarResult {
	if checker == nil {
		metrics.IncCapabilityDegraded()
		return GrammarResult{
			ErrorCount:        -1,
			SampleErrors:      []string{},
			UnavailableReason: "grammar service not configured",
		}
	}

	issues, err := checker.Check(ctx, text)
	if err != nil {
		metrics.IncCapabilityDegraded()
		return GrammarResult{
			ErrorCount:        -1,
			SampleErrors:      []string{},
			UnavailableReason: err.Error(),
		}
	}

	samples := make([]string, 0, maxSampleErrors)
	for _, issue := range issues {
		if len(samples) == maxSampleErrors {
			break
		}
		msg := truncate(issue.Message, maxSampleMsgChars)
		samples = append(samples, fmt.Sprintf("%s | %s", issue.RuleID, msg))
	}

	return GrammarResult{ErrorCount: len(issues), SampleErrors: samples}
}

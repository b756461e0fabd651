package analysis

import (
	"regexp"
	"strings"
)

// Curated achievement-oriented verbs counted by CountActionVerbs.
var actionVerbs = map[string]struct{}{
	"achieved": {}, "improved": {}, "managed": {}, "led": {}, "created": {},
	"designed": {}, "implemented": {}, "reduced": {}, "increased": {},
	"developed": {}, "engineered": {}, "launched": {}, "optimized": {},
	"automated": {}, "orchestrated": {}, "resolved": {}, "boosted": {},
	"coordinated": {}, "spearheaded": {}, "delivered": {}, "built": {},
	"founded": {}, "mentored": {}, "trained": {}, "negotiated": {},
}

// Canonical sections (and markers) a resume is expected to carry, in report
// order. The "+91" phone prefix is a marker inherited from the section list's
// origin; matching stays case-insensitive substring for every entry.
var requiredSections = []string{"+91", "summary", "skills", "experience", "projects", "education", "linkedin"}

var (
	wordPattern   = regexp.MustCompile(`[a-zA-Z]+`)
	bulletPattern = regexp.MustCompile(`(?m)^\s*[-•*]\s+`)
)

// CountActionVerbs counts alphabetic tokens that belong to the curated
// achievement-verb set, case-insensitively.
func CountActionVerbs(text string) int {
	count := 0
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := actionVerbs[w]; ok {
			count++
		}
	}
	return count
}

// MissingSections returns the canonical section names absent from the text,
// preserving canonical order. A section is present iff its name occurs as a
// case-insensitive substring.
func MissingSections(text string) []string {
	lower := strings.ToLower(text)
	missing := make([]string, 0, len(requiredSections))
	for _, sec := range requiredSections {
		if !strings.Contains(lower, strings.ToLower(sec)) {
			missing = append(missing, sec)
		}
	}
	return missing
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// countBulletLines counts lines that start with a bullet marker.
func countBulletLines(text string) int {
	return len(bulletPattern.FindAllString(text, -1))
}

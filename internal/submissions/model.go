package submissions

import "time"

// Submission is one stored resume submission (file or pasted text) together
// with its quick-score results. UserID is empty for anonymous submissions.
type Submission struct {
	ID              string
	UserID          string
	ResumeKey       string
	ResumeText      string
	TargetRole      string
	Score           int
	Skills          []string
	Recommendations []string
	CreatedAt       time.Time
}

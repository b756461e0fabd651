package submissions

import "time"

// SubmissionResponse is the outward-facing representation of a submission.
type SubmissionResponse struct {
	SubmissionID    string    `json:"submissionId"`
	TargetRole      string    `json:"targetRole"`
	Score           int       `json:"score"`
	Skills          []string  `json:"skills"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toResponse(sub Submission) SubmissionResponse {
	skills := sub.Skills
	if skills == nil {
		skills = []string{}
	}
	recommendations := sub.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	return SubmissionResponse{
		SubmissionID:    sub.ID,
		TargetRole:      sub.TargetRole,
		Score:           sub.Score,
		Skills:          skills,
		Recommendations: recommendations,
		CreatedAt:       sub.CreatedAt,
	}
}

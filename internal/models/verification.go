package models

import "time"

const (
	VerificationStepDocuments = "documents"
	VerificationStepSkillTest = "skill_test"
	VerificationStepInterview = "interview"

	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

type VerificationRequest struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Step         string     `json:"step"`
	Status       string     `json:"status"`
	DocumentURLs []string   `json:"document_urls,omitempty"`
	TestScore    *int       `json:"test_score,omitempty"`
	InterviewAt  *time.Time `json:"interview_at,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type SkillTestSubmission struct {
	Answers map[string]string `json:"answers"`
}

type InterviewSlotRequest struct {
	PreferredAt time.Time `json:"preferred_at"`
}

package models

import "time"

const (
	AssignmentStatusOpen       = "open"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusClosed     = "closed"
)

// Assignment is a buyer-posted task freelancers bid on. Jobs share the
// same shape server-side; JobInput below carries the extra fields a
// vacancy posting needs.
type Assignment struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	UserName    string     `json:"user_name,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Skills      []string   `json:"skills,omitempty"`
	BudgetFrom  float64    `json:"budget_from"`
	BudgetTo    float64    `json:"budget_to"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	BidsCount   int        `json:"bids_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AssignmentInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Skills       []string `json:"skills"`
	BudgetFrom   float64  `json:"budget_from"`
	BudgetTo     float64  `json:"budget_to"`
	DurationDays int      `json:"duration_days,omitempty"`
}

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Skills      []string  `json:"skills,omitempty"`
	SalaryFrom  float64   `json:"salary_from"`
	SalaryTo    float64   `json:"salary_to"`
	Location    string    `json:"location,omitempty"`
	Remote      bool      `json:"remote"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	SalaryFrom  float64  `json:"salary_from"`
	SalaryTo    float64  `json:"salary_to"`
	Location    string   `json:"location,omitempty"`
	Remote      bool     `json:"remote"`
}

// JobApplication is a freelancer response to a job posting; the resume
// goes up as a multipart file alongside these fields.
type JobApplication struct {
	ID          int       `json:"id"`
	JobID       int       `json:"job_id"`
	UserID      int       `json:"user_id"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

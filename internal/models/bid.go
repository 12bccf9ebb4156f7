package models

import "time"

const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

type Bid struct {
	ID           int       `json:"id"`
	AssignmentID int       `json:"assignment_id"`
	UserID       int       `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	UserRating   float64   `json:"user_rating,omitempty"`
	Amount       float64   `json:"amount"`
	DurationDays int       `json:"duration_days"`
	CoverMessage string    `json:"cover_message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type BidInput struct {
	AssignmentID int     `json:"assignment_id"`
	Amount       float64 `json:"amount"`
	DurationDays int     `json:"duration_days"`
	CoverMessage string  `json:"cover_message"`
}

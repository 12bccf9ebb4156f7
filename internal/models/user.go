package models

import (
	"time"
)

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
	RoleAdmin      = "admin"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	City         string     `json:"city,omitempty"`
	Role         string     `json:"role"`
	AvatarPath   *string    `json:"avatar_path,omitempty"`
	About        string     `json:"about,omitempty"`
	Skills       []string   `json:"skills,omitempty"`
	ReviewRating float64    `json:"review_rating"`
	ReviewsCount int        `json:"reviews_count"`
	Verified     bool       `json:"verified"`
	Banned       bool       `json:"banned,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type UpdateProfileRequest struct {
	Name    string   `json:"name,omitempty"`
	Surname string   `json:"surname,omitempty"`
	City    string   `json:"city,omitempty"`
	About   string   `json:"about,omitempty"`
	Skills  []string `json:"skills,omitempty"`
}

package models

import "time"

const (
	GigStatusActive  = "active"
	GigStatusPaused  = "paused"
	GigStatusArchive = "archive"
)

type Gig struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	UserName      string     `json:"user_name,omitempty"`
	UserRating    float64    `json:"user_rating,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Price         float64    `json:"price"`
	DeliveryDays  int        `json:"delivery_days"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Status        string     `json:"status"`
	OrdersDone    int        `json:"orders_done"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type GigInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
}

package models

import "time"

const (
	OrderStatusActive     = "active"
	OrderStatusDelivered  = "delivered"
	OrderStatusRevision   = "revision"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusInDispute  = "in_dispute"
)

type Order struct {
	ID           int        `json:"id"`
	GigID        int        `json:"gig_id,omitempty"`
	AssignmentID int        `json:"assignment_id,omitempty"`
	BuyerID      int        `json:"buyer_id"`
	SellerID     int        `json:"seller_id"`
	Title        string     `json:"title"`
	Price        float64    `json:"price"`
	Status       string     `json:"status"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Delivery struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"order_id"`
	Message       string    `json:"message"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RevisionRequest struct {
	OrderID int    `json:"order_id"`
	Reason  string `json:"reason"`
}

type Review struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	UserID    int       `json:"user_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

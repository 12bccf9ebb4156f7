package models

import "time"

const (
	NotificationNewBid     = "new_bid"
	NotificationNewMessage = "new_message"
	NotificationNewOrder   = "new_order"
	NotificationDelivery   = "delivery"
	NotificationSystem     = "system"
)

type Notification struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	EntityID  int        `json:"entity_id,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type UnreadCount struct {
	Count int `json:"count"`
}

package models

import "time"

// Valid order statuses. The update endpoint accepts any value from
// this list regardless of the current status.
var OrderStatuses = []string{"pending", "paid", "shipped", "delivered", "cancelled"}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID         int64       `json:"id"`
	UserID     string      `json:"user_id,omitempty"`
	GuestEmail string      `json:"guest_email,omitempty"`
	Status     string      `json:"status"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Items      []OrderItem `json:"items,omitempty"`

	// joined customer fields, set on admin reads
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type OrderItem struct {
	ID            int64   `json:"id"`
	ProductID     *int64  `json:"product_id"`
	ProductTitle  string  `json:"product_title"`
	ProductArtist string  `json:"product_artist,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

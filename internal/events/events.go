package events

import "time"

type OrderEvent struct {
	Type    string    `json:"type"` // "order.status_changed"
	OrderID int64     `json:"order_id"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

type ImportEvent struct {
	Type    string    `json:"type"` // "import.finished"
	Created int       `json:"created"`
	Errors  int       `json:"errors"`
	At      time.Time `json:"at"`
}

type ProductEvent struct {
	Type      string    `json:"type"` // "product.created" or "product.deleted"
	ProductID int64     `json:"product_id"`
	Title     string    `json:"title,omitempty"`
	At        time.Time `json:"at"`
}

package models

import "time"

// ProductImage is one gallery row. PublicID is the external-storage
// handle used for best-effort cleanup when the product is deleted.
type ProductImage struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ImageURL     string    `json:"image_url"`
	PublicID     string    `json:"public_id,omitempty"`
	IsMain       bool      `json:"is_main"`
	DisplayOrder int       `json:"display_order"`
	AltText      string    `json:"alt_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

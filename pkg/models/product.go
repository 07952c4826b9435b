package models

import "time"

// Product is one vinyl record in the catalog.
//
// CategoryID is nullable: CSV imports leave it unset when the category
// reference cannot be resolved. ImageURL mirrors the gallery row with
// is_main=true; the product service keeps both in sync.
type Product struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Artist             string    `json:"artist"`
	Price              float64   `json:"price"`
	Installments       int       `json:"installments"`
	InstallmentPrice   *float64  `json:"installment_price"`
	Label              string    `json:"label,omitempty"`
	Country            string    `json:"country,omitempty"`
	ConditionCover     string    `json:"condition_cover,omitempty"`
	ConditionMedia     string    `json:"condition_media,omitempty"`
	CategoryID         *int64    `json:"category_id"`
	Stock              int       `json:"stock"`
	Description        string    `json:"description,omitempty"`
	ImageURL           string    `json:"image_url,omitempty"`
	IsFeatured         bool      `json:"is_featured"`
	IsOnSale           bool      `json:"is_on_sale"`
	DiscountPercentage int       `json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// joined fields, set on reads only
	CategoryName string         `json:"category_name,omitempty"`
	CategorySlug string         `json:"category_slug,omitempty"`
	MainImageURL string         `json:"main_image_url,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
}

package product

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Form is the typed shape of the admin product multipart form. All
// coercion from the untyped form values happens in ParseForm so the
// service only ever sees valid typed input.
type Form struct {
	Title              string
	Artist             string
	Price              float64
	Installments       int
	InstallmentPrice   *float64
	Label              string
	Country            string
	ConditionCover     string
	ConditionMedia     string
	CategoryID         *int64
	Stock              int
	IsFeatured         bool
	IsOnSale           bool
	DiscountPercentage int
	Description        string
}

// ParseForm validates and coerces the posted fields. Note: this path
// accepts "1" as true for the boolean flags while the CSV importer
// only accepts "true"; the looseness here mirrors the form encoding
// the admin panel sends.
func ParseForm(c *gin.Context) (*Form, error) {
	f := &Form{
		Title:          strings.TrimSpace(c.PostForm("title")),
		Artist:         strings.TrimSpace(c.PostForm("artist")),
		Label:          strings.TrimSpace(c.PostForm("label")),
		Country:        strings.TrimSpace(c.PostForm("country")),
		ConditionCover: strings.TrimSpace(c.PostForm("condition_cover")),
		ConditionMedia: strings.TrimSpace(c.PostForm("condition_media")),
		Description:    strings.TrimSpace(c.PostForm("description")),
	}

	if f.Title == "" || f.Artist == "" {
		return nil, fmt.Errorf("title, artist and price are required")
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("title, artist and price are required")
	}
	f.Price = price

	f.Installments = intField(c, "installments", 3)
	f.Stock = intField(c, "stock", 0)
	f.DiscountPercentage = intField(c, "discount_percentage", 0)

	if raw := c.PostForm("installment_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.InstallmentPrice = &v
		}
	}
	if raw := c.PostForm("category_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.CategoryID = &v
		}
	}

	f.IsFeatured = boolField(c, "is_featured")
	f.IsOnSale = boolField(c, "is_on_sale")

	return f, nil
}

func intField(c *gin.Context, name string, def int) int {
	raw := c.PostForm(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func boolField(c *gin.Context, name string) bool {
	b, err := strconv.ParseBool(strings.ToLower(c.PostForm(name)))
	if err != nil {
		return false
	}
	return b
}

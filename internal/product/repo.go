package product

import (
	"context"
	"database/sql"
	"fmt"

	"vinylshop/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Insert(ctx context.Context, f *Form) (*models.Product, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO products
			(title, artist, price, installments, installment_price, label, country,
			 condition_cover, condition_media, category_id, stock,
			 is_featured, is_on_sale, discount_percentage, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.Title, f.Artist, f.Price, f.Installments, f.InstallmentPrice,
		nullString(f.Label), nullString(f.Country),
		nullString(f.ConditionCover), nullString(f.ConditionMedia),
		f.CategoryID, f.Stock, f.IsFeatured, f.IsOnSale,
		f.DiscountPercentage, nullString(f.Description))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert product id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every mutable field. Returns nil when the product
// does not exist.
func (r *Repo) Update(ctx context.Context, id int64, f *Form) (*models.Product, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE products SET
			title = ?, artist = ?, price = ?, installments = ?, installment_price = ?,
			label = ?, country = ?, condition_cover = ?, condition_media = ?,
			category_id = ?, stock = ?, is_featured = ?, is_on_sale = ?,
			discount_percentage = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, f.Title, f.Artist, f.Price, f.Installments, f.InstallmentPrice,
		nullString(f.Label), nullString(f.Country),
		nullString(f.ConditionCover), nullString(f.ConditionMedia),
		f.CategoryID, f.Stock, f.IsFeatured, f.IsOnSale,
		f.DiscountPercentage, nullString(f.Description), id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update product rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product rows: %w", err)
	}
	return affected > 0, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, artist, price, installments, installment_price, label, country,
		       condition_cover, condition_media, category_id, stock, description, image_url,
		       is_featured, is_on_sale, discount_percentage, created_at, updated_at
		FROM products
		WHERE id = ?
	`, id)

	var (
		p                models.Product
		installmentPrice sql.NullFloat64
		label            sql.NullString
		country          sql.NullString
		conditionCover   sql.NullString
		conditionMedia   sql.NullString
		categoryID       sql.NullInt64
		description      sql.NullString
		imageURL         sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Artist, &p.Price, &p.Installments, &installmentPrice,
		&label, &country, &conditionCover, &conditionMedia, &categoryID, &p.Stock,
		&description, &imageURL, &p.IsFeatured, &p.IsOnSale, &p.DiscountPercentage,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if installmentPrice.Valid {
		p.InstallmentPrice = &installmentPrice.Float64
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	p.Label = label.String
	p.Country = country.String
	p.ConditionCover = conditionCover.String
	p.ConditionMedia = conditionMedia.String
	p.Description = description.String
	p.ImageURL = imageURL.String
	return &p, nil
}

// SetImageURL maintains the denormalized main-image mirror on the
// product row. Only the mutation service calls this; nothing in the
// store enforces the invariant.
func (r *Repo) SetImageURL(ctx context.Context, id int64, url string) error {
	if _, err := r.DB.ExecContext(ctx,
		`UPDATE products SET image_url = ? WHERE id = ?`, url, id); err != nil {
		return fmt.Errorf("set image url: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

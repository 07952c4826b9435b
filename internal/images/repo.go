package images

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

func (r *Repo) Insert(ctx context.Context, img models.ProductImage) (*models.ProductImage, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO product_images (product_id, image_url, public_id, is_main, display_order, alt_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`, img.ProductID, img.ImageURL, nullString(img.PublicID), img.IsMain, img.DisplayOrder, nullString(img.AltText))
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert image id: %w", err)
	}
	return r.Get(ctx, img.ProductID, id)
}

func (r *Repo) Get(ctx context.Context, productID, id int64) (*models.ProductImage, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, product_id, image_url, public_id, is_main, display_order, alt_text, created_at
		FROM product_images
		WHERE id = ? AND product_id = ?
	`, id, productID)
	return scanImage(row)
}

// List returns a product's gallery ordered for rendering.
func (r *Repo) List(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, image_url, public_id, is_main, display_order, alt_text, created_at
		FROM product_images
		WHERE product_id = ?
		ORDER BY display_order ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProductImage, 0)
	for rows.Next() {
		var (
			img      models.ProductImage
			publicID sql.NullString
			altText  sql.NullString
		)
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &publicID, &img.IsMain,
			&img.DisplayOrder, &altText, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		img.PublicID = publicID.String
		img.AltText = altText.String
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context, productID int64) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_images WHERE product_id = ?`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}

// NextDisplayOrder is max(display_order)+1, starting at 0 for an
// empty gallery.
func (r *Repo) NextDisplayOrder(ctx context.Context, productID int64) (int, error) {
	var next int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(display_order), -1) + 1 FROM product_images WHERE product_id = ?`,
		productID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next display order: %w", err)
	}
	return next, nil
}

func (r *Repo) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return true, nil
}

// PublicIDs lists the external-storage handles for a product, used for
// best-effort cleanup before deletion.
func (r *Repo) PublicIDs(ctx context.Context, productID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT public_id FROM product_images
		WHERE product_id = ? AND public_id IS NOT NULL AND public_id != ''
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list public ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan public id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// UpdateFields patches only the supplied fields, COALESCE-style.
func (r *Repo) UpdateFields(ctx context.Context, productID, id int64, imageURL *string, isMain *bool, displayOrder *int, altText *string) (*models.ProductImage, error) {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE product_images
		SET image_url     = COALESCE(?, image_url),
		    is_main       = COALESCE(?, is_main),
		    display_order = COALESCE(?, display_order),
		    alt_text      = COALESCE(?, alt_text)
		WHERE id = ? AND product_id = ?
	`, imageURL, isMain, displayOrder, altText, id, productID)
	if err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return r.Get(ctx, productID, id)
}

func (r *Repo) Delete(ctx context.Context, productID, id int64) (*models.ProductImage, error) {
	img, err := r.Get(ctx, productID, id)
	if err != nil || img == nil {
		return img, err
	}
	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM product_images WHERE id = ? AND product_id = ?`, id, productID); err != nil {
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return img, nil
}

// SetMain marks one image as main. Siblings are left untouched;
// callers that want a single main image demote the old one themselves.
func (r *Repo) SetMain(ctx context.Context, productID, id int64) (*models.ProductImage, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE product_images SET is_main = 1 WHERE id = ? AND product_id = ?`, id, productID)
	if err != nil {
		return nil, fmt.Errorf("set main: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("set main rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.Get(ctx, productID, id)
}

func scanImage(row *sql.Row) (*models.ProductImage, error) {
	var (
		img      models.ProductImage
		publicID sql.NullString
		altText  sql.NullString
	)
	if err := row.Scan(&img.ID, &img.ProductID, &img.ImageURL, &publicID, &img.IsMain,
		&img.DisplayOrder, &altText, &img.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan image: %w", err)
	}
	img.PublicID = publicID.String
	img.AltText = altText.String
	return &img, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

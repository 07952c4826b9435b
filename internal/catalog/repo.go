package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vinylshop/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

// ListQuery is the public browsing filter set.
type ListQuery struct {
	CategorySlug string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     bool
	OnSale       bool
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// selectProducts joins the category and computes main_image_url: the
// gallery row flagged is_main wins, the denormalized product column is
// the fallback.
const selectProducts = `
	SELECT p.id, p.title, p.artist, p.price, p.installments, p.installment_price,
	       p.label, p.country, p.condition_cover, p.condition_media,
	       p.category_id, p.stock, p.description, p.image_url,
	       p.is_featured, p.is_on_sale, p.discount_percentage,
	       p.created_at, p.updated_at,
	       c.name, c.slug,
	       COALESCE(
	           (SELECT pi.image_url FROM product_images pi
	            WHERE pi.product_id = p.id AND pi.is_main = 1
	            LIMIT 1),
	           p.image_url
	       )
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
`

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)

	if strings.TrimSpace(q.CategorySlug) != "" {
		where = append(where, "c.slug = ?")
		args = append(args, q.CategorySlug)
	}
	if q.MinPrice != nil {
		where = append(where, "p.price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "p.price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Featured {
		where = append(where, "p.is_featured = 1")
	}
	if q.OnSale {
		where = append(where, "p.is_on_sale = 1")
	}

	sqlStr := selectProducts
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY p.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, selectProducts+" WHERE p.id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows err: %w", err)
		}
		return nil, nil
	}
	return scanProduct(rows)
}

func scanProduct(rows *sql.Rows) (*models.Product, error) {
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
		categoryName     sql.NullString
		categorySlug     sql.NullString
		mainImageURL     sql.NullString
	)

	if err := rows.Scan(&p.ID, &p.Title, &p.Artist, &p.Price, &p.Installments, &installmentPrice,
		&label, &country, &conditionCover, &conditionMedia, &categoryID, &p.Stock,
		&description, &imageURL, &p.IsFeatured, &p.IsOnSale, &p.DiscountPercentage,
		&p.CreatedAt, &p.UpdatedAt, &categoryName, &categorySlug, &mainImageURL); err != nil {
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
	p.CategoryName = categoryName.String
	p.CategorySlug = categorySlug.String
	p.MainImageURL = mainImageURL.String
	return &p, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.image_url, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON c.id = p.category_id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0)
	for rows.Next() {
		var (
			cat         models.Category
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &description, &imageURL, &cat.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.Description = description.String
		cat.ImageURL = imageURL.String
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, slug, description, image_url
		FROM categories
		WHERE slug = ?
	`, slug)

	var (
		cat         models.Category
		description sql.NullString
		imageURL    sql.NullString
	)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &description, &imageURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	cat.Description = description.String
	cat.ImageURL = imageURL.String
	return &cat, nil
}

package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vinylshop/pkg/database"
)

// Dumps the product table in the same column layout the importer
// recognizes, so an export can be re-imported elsewhere.
func main() {
	var (
		out = flag.String("out", "data/products.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportProducts(ctx, db, *out); err != nil {
		log.Fatalf("export products failed: %v", err)
	}

	log.Printf("✅ exported products to %s", *out)
}

func exportProducts(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"title", "artist", "price", "label", "country",
		"condition_cover", "condition_media", "category", "stock",
		"is_featured", "is_on_sale", "discount_percentage", "description",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT p.title, p.artist, p.price, p.label, p.country,
		       p.condition_cover, p.condition_media, c.slug, p.stock,
		       p.is_featured, p.is_on_sale, p.discount_percentage, p.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.artist, p.title
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			title          string
			artist         string
			price          float64
			label          sql.NullString
			country        sql.NullString
			conditionCover sql.NullString
			conditionMedia sql.NullString
			categorySlug   sql.NullString
			stock          int
			isFeatured     bool
			isOnSale       bool
			discount       int
			description    sql.NullString
		)
		if err := rows.Scan(&title, &artist, &price, &label, &country,
			&conditionCover, &conditionMedia, &categorySlug, &stock,
			&isFeatured, &isOnSale, &discount, &description); err != nil {
			return err
		}

		if err := w.Write([]string{
			title, artist,
			strconv.FormatFloat(price, 'f', -1, 64),
			label.String, country.String,
			conditionCover.String, conditionMedia.String,
			categorySlug.String,
			strconv.Itoa(stock),
			strconv.FormatBool(isFeatured),
			strconv.FormatBool(isOnSale),
			strconv.Itoa(discount),
			description.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

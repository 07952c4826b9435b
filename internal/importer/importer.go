package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoData means the input had fewer than two non-blank lines
// (header plus at least one data row).
var ErrNoData = errors.New("csv must have a header and at least one data row")

// Result is the outcome of one batch. Errors holds one human-readable
// string per skipped row, in row order. Rows that hit the uniqueness
// constraint are silent no-ops: no error entry, no Created increment.
type Result struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

// Importer runs CSV batches against the product store. Rows are
// processed strictly in order, one at a time; a failed row is recorded
// and the batch continues.
type Importer struct {
	DB *sql.DB
}

func New(db *sql.DB) *Importer {
	return &Importer{DB: db}
}

func (im *Importer) Import(ctx context.Context, text string) (*Result, error) {
	lines := Lines(text)
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	rawHeader := SplitFields(lines[0])
	keys := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		keys[i] = CanonicalKey(h)
	}

	res := &Result{Errors: []string{}}

	for i := 1; i < len(lines); i++ {
		rowNum := i + 1 // header is line 1
		row := buildRow(keys, SplitFields(lines[i]))

		title := row.First("title", "titulo")
		artist := row.First("artist", "artista")
		price := parseFloatDefault(row.First("price", "precio"), 0)

		if title == "" || artist == "" || price <= 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: missing title, artist, or price", rowNum))
			continue
		}

		if err := im.insertRow(ctx, row, title, artist, price, res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return res, nil
}

func (im *Importer) insertRow(ctx context.Context, row Row, title, artist string, price float64, res *Result) error {
	categoryID, err := ResolveCategory(ctx, im.DB, row.First("category", "categoria", "categoryid"))
	if err != nil {
		return err
	}

	r, err := im.DB.ExecContext(ctx, `
		INSERT INTO products
			(title, artist, price, label, country, condition_cover, condition_media,
			 category_id, stock, is_featured, is_on_sale, discount_percentage, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		title, artist, price,
		nullString(row.First("label")),
		nullString(row.First("country", "pais")),
		nullString(row.First("conditioncover", "condiciontapa")),
		nullString(row.First("conditionmedia", "condiciondisco")),
		nullInt(categoryID),
		parseIntDefault(row.First("stock"), 1),
		strings.EqualFold(row.First("isfeatured", "destacado"), "true"),
		strings.EqualFold(row.First("isonsale", "oferta"), "true"),
		parseIntDefault(row.First("discountpercentage", "descuento"), 0),
		nullString(row.First("description", "descripcion")),
	)
	if err != nil {
		return err
	}

	// a conflict no-op reports zero affected rows and must not count
	affected, err := r.RowsAffected()
	if err != nil {
		return err
	}
	res.Created += int(affected)
	return nil
}

func parseFloatDefault(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

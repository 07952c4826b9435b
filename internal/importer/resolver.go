package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// ResolveCategory turns a raw category reference into a category id.
// A clean integer parse is used directly with no existence check. A
// non-numeric value is matched case-insensitively against category
// name or slug; no match leaves the product uncategorized (nil, nil)
// rather than failing the row.
func ResolveCategory(ctx context.Context, db *sql.DB, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &n, nil
	}

	var id int64
	err := db.QueryRowContext(ctx, `
		SELECT id FROM categories
		WHERE LOWER(name) = LOWER(?) OR LOWER(slug) = LOWER(?)
	`, raw, raw).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("category lookup: %w", err)
	}
	return &id, nil
}

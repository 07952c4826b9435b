package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"vinylshop/internal/importer"
	"vinylshop/pkg/database"
)

// Offline counterpart of POST /api/admin/products/csv: same parser,
// same partial-failure semantics, for big initial loads.
func main() {
	var (
		in = flag.String("in", "data/products.csv", "input CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	content, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s failed: %v", *in, err)
	}

	res, err := importer.New(db).Import(ctx, string(content))
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	for _, e := range res.Errors {
		log.Printf("  %s", e)
	}
	log.Printf("✅ imported %d products from %s (%d rows skipped)", res.Created, *in, len(res.Errors))
}

package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinylshop/pkg/database"
)

func testRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewRepo(db), db
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO categories (name, slug) VALUES ('Rock Nacional', 'rock-nacional'), ('Jazz', 'jazz');
		INSERT INTO products (title, artist, price, category_id, is_featured, is_on_sale, discount_percentage)
		VALUES
			('Artaud', 'Pescado Rabioso', 45000, 1, 1, 0, 0),
			('Kind of Blue', 'Miles Davis', 60000, 2, 0, 1, 15),
			('Clics Modernos', 'Charly Garcia', 30000, 1, 0, 0, 0);
	`)
	require.NoError(t, err)
}

func TestListAllProducts(t *testing.T) {
	repo, db := testRepo(t)
	seedCatalog(t, db)

	products, err := repo.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestListFilters(t *testing.T) {
	repo, db := testRepo(t)
	seedCatalog(t, db)
	ctx := context.Background()

	byCategory, err := repo.List(ctx, ListQuery{CategorySlug: "rock-nacional"})
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	for _, p := range byCategory {
		assert.Equal(t, "Rock Nacional", p.CategoryName)
	}

	min, max := 40000.0, 65000.0
	byPrice, err := repo.List(ctx, ListQuery{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, byPrice, 2)

	featured, err := repo.List(ctx, ListQuery{Featured: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Artaud", featured[0].Title)

	onSale, err := repo.List(ctx, ListQuery{OnSale: true})
	require.NoError(t, err)
	require.Len(t, onSale, 1)
	assert.Equal(t, "Kind of Blue", onSale[0].Title)
	assert.Equal(t, 15, onSale[0].DiscountPercentage)

	// filters combine with AND
	combined, err := repo.List(ctx, ListQuery{CategorySlug: "rock-nacional", Featured: true})
	require.NoError(t, err)
	assert.Len(t, combined, 1)
}

func TestMainImageURLPrefersGalleryMain(t *testing.T) {
	repo, db := testRepo(t)
	seedCatalog(t, db)
	ctx := context.Background()

	_, err := db.Exec(`UPDATE products SET image_url = 'https://img.test/fallback.jpg' WHERE id = 1`)
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "https://img.test/fallback.jpg", p.MainImageURL, "no gallery falls back to the product column")

	_, err = db.Exec(`
		INSERT INTO product_images (product_id, image_url, is_main, display_order)
		VALUES (1, 'https://img.test/gallery.jpg', 1, 0)
	`)
	require.NoError(t, err)

	p, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "https://img.test/gallery.jpg", p.MainImageURL)
}

func TestGetByIDMissing(t *testing.T) {
	repo, _ := testRepo(t)

	p, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductWithoutCategory(t *testing.T) {
	repo, db := testRepo(t)

	_, err := db.Exec(`INSERT INTO products (title, artist, price) VALUES ('Homeless', 'Nobody', 1000)`)
	require.NoError(t, err)

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.CategoryID)
	assert.Empty(t, p.CategoryName)
}

func TestListCategoriesWithCounts(t *testing.T) {
	repo, db := testRepo(t)
	seedCatalog(t, db)

	cats, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)

	// ordered by name: Jazz before Rock Nacional
	assert.Equal(t, "Jazz", cats[0].Name)
	assert.Equal(t, 1, cats[0].ProductCount)
	assert.Equal(t, "Rock Nacional", cats[1].Name)
	assert.Equal(t, 2, cats[1].ProductCount)
}

func TestGetCategoryBySlug(t *testing.T) {
	repo, db := testRepo(t)
	seedCatalog(t, db)
	ctx := context.Background()

	cat, err := repo.GetCategoryBySlug(ctx, "jazz")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Jazz", cat.Name)

	missing, err := repo.GetCategoryBySlug(ctx, "cumbia")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

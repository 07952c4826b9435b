package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinylshop/internal/images"
	"vinylshop/internal/storage"
	"vinylshop/pkg/database"
)

type fakeUploader struct {
	uploads   []string
	deletes   []string
	deleteErr error
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, publicID string) (*storage.UploadResult, error) {
	f.uploads = append(f.uploads, publicID)
	return &storage.UploadResult{
		URL:      fmt.Sprintf("https://img.test/%s.jpg", publicID),
		PublicID: publicID,
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deletes = append(f.deletes, publicID)
	return f.deleteErr
}

func testService(t *testing.T) (*Service, *fakeUploader, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	up := &fakeUploader{}
	return NewService(NewRepo(db), images.NewRepo(db), up), up, db
}

func basicForm(title string) *Form {
	return &Form{
		Title:        title,
		Artist:       "Test Artist",
		Price:        9999,
		Installments: 3,
		Stock:        5,
	}
}

func TestCreateWithThreeImages(t *testing.T) {
	svc, _, db := testService(t)
	ctx := context.Background()

	files := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	p, err := svc.Create(ctx, basicForm("With Images"), files)
	require.NoError(t, err)

	imgs, err := svc.Images.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 3)

	// exactly the first image is main, with display orders 0,1,2
	assert.True(t, imgs[0].IsMain)
	assert.False(t, imgs[1].IsMain)
	assert.False(t, imgs[2].IsMain)
	assert.Equal(t, 0, imgs[0].DisplayOrder)
	assert.Equal(t, 1, imgs[1].DisplayOrder)
	assert.Equal(t, 2, imgs[2].DisplayOrder)

	// the product row mirrors the main image URL
	assert.Equal(t, imgs[0].ImageURL, p.ImageURL)

	// deterministic per-product/per-index naming
	assert.Equal(t, fmt.Sprintf("product_%d_0", p.ID), imgs[0].PublicID)
	assert.Equal(t, fmt.Sprintf("product_%d_2", p.ID), imgs[2].PublicID)

	var mirror string
	require.NoError(t, db.QueryRow(`SELECT image_url FROM products WHERE id = ?`, p.ID).Scan(&mirror))
	assert.Equal(t, imgs[0].ImageURL, mirror)
}

func TestCreateWithoutImages(t *testing.T) {
	svc, up, _ := testService(t)

	p, err := svc.Create(context.Background(), basicForm("No Images"), nil)
	require.NoError(t, err)
	assert.Empty(t, up.uploads)
	assert.Empty(t, p.ImageURL)
}

func TestUpdateAppendsImagesAfterExisting(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, basicForm("Append Test"), [][]byte{[]byte("first")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, basicForm("Append Test"), [][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	imgs, err := svc.Images.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 3)

	// new images continue from the existing max and stay non-main
	assert.Equal(t, 1, imgs[1].DisplayOrder)
	assert.Equal(t, 2, imgs[2].DisplayOrder)
	assert.False(t, imgs[1].IsMain)
	assert.False(t, imgs[2].IsMain)

	// the existing main is untouched
	assert.True(t, imgs[0].IsMain)
	assert.Equal(t, imgs[0].ImageURL, updated.ImageURL)
}

func TestUpdateFirstImageOnEmptyGalleryBecomesMain(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, basicForm("Late Images"), nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, basicForm("Late Images"), [][]byte{[]byte("x"), []byte("y")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	imgs, err := svc.Images.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.True(t, imgs[0].IsMain)
	assert.False(t, imgs[1].IsMain)
	assert.Equal(t, imgs[0].ImageURL, updated.ImageURL)
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &Form{
		Title: "Before", Artist: "Old Artist", Price: 100, Installments: 3,
		Label: "Old Label", Stock: 1,
	}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, &Form{
		Title: "After", Artist: "New Artist", Price: 200, Installments: 6,
		Stock: 7, IsOnSale: true, DiscountPercentage: 25,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "New Artist", updated.Artist)
	assert.Equal(t, 200.0, updated.Price)
	assert.Equal(t, 6, updated.Installments)
	assert.Equal(t, 7, updated.Stock)
	assert.True(t, updated.IsOnSale)
	assert.Equal(t, 25, updated.DiscountPercentage)
	// full overwrite clears fields not supplied
	assert.Empty(t, updated.Label)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc, _, _ := testService(t)

	p, err := svc.Update(context.Background(), 9999, basicForm("Ghost"), nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteCleansUpHostedImages(t *testing.T) {
	svc, up, db := testService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, basicForm("Doomed"), [][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, []string{
		fmt.Sprintf("product_%d_0", p.ID),
		fmt.Sprintf("product_%d_1", p.ID),
	}, up.deletes)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM product_images WHERE product_id = ?`, p.ID).Scan(&n))
	assert.Equal(t, 0, n, "image rows cascade with the product")
}

func TestDeleteSwallowsHostedImageFailures(t *testing.T) {
	svc, up, db := testService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, basicForm("Stubborn"), [][]byte{[]byte("a")})
	require.NoError(t, err)

	up.deleteErr = errors.New("provider down")

	deleted, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err, "external cleanup failures are never surfaced")
	assert.True(t, deleted)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products WHERE id = ?`, p.ID).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM product_images WHERE product_id = ?`, p.ID).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, _, _ := testService(t)

	deleted, err := svc.Delete(context.Background(), 12345)
	require.NoError(t, err)
	assert.False(t, deleted)
}

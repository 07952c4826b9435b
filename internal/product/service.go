package product

import (
	"context"
	"fmt"
	"log"

	"vinylshop/internal/images"
	"vinylshop/internal/storage"
	"vinylshop/pkg/models"
)

// Service performs admin product mutations: the row itself plus the
// gallery rows and externally hosted assets that hang off it. Image
// uploads are awaited one at a time so display order assignment stays
// deterministic.
type Service struct {
	Repo     *Repo
	Images   *images.Repo
	Uploader storage.Uploader
}

func NewService(repo *Repo, imgRepo *images.Repo, up storage.Uploader) *Service {
	return &Service{Repo: repo, Images: imgRepo, Uploader: up}
}

// Create inserts the product and attaches the supplied image payloads
// in order. The first image becomes main and its URL is mirrored onto
// the product row. A failed upload aborts with the product row
// already persisted; there is no batch transaction.
func (s *Service) Create(ctx context.Context, f *Form, files [][]byte) (*models.Product, error) {
	p, err := s.Repo.Insert(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := s.attachImages(ctx, p.ID, files, 0); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, p.ID)
}

// Update overwrites the product row and appends any new images after
// the existing gallery. New images only become main when the gallery
// was empty beforehand.
func (s *Service) Update(ctx context.Context, id int64, f *Form, files [][]byte) (*models.Product, error) {
	p, err := s.Repo.Update(ctx, id, f)
	if err != nil || p == nil {
		return p, err
	}

	if len(files) > 0 {
		startOrder, err := s.Images.Count(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.attachImages(ctx, id, files, startOrder); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes the product and its gallery. Externally hosted
// assets are cleaned up best-effort first; individual deletion
// failures are logged and otherwise ignored.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if s.Uploader != nil {
		publicIDs, err := s.Images.PublicIDs(ctx, id)
		if err != nil {
			return false, err
		}
		for _, pid := range publicIDs {
			if err := s.Uploader.Delete(ctx, pid); err != nil {
				log.Printf("cleanup of hosted image %s failed: %v", pid, err)
			}
		}
	}

	return s.Repo.Delete(ctx, id)
}

func (s *Service) attachImages(ctx context.Context, productID int64, files [][]byte, startOrder int) error {
	for i, data := range files {
		order := startOrder + i
		if s.Uploader == nil {
			return fmt.Errorf("image storage not configured")
		}

		up, err := s.Uploader.Upload(ctx, data, fmt.Sprintf("product_%d_%d", productID, order))
		if err != nil {
			return fmt.Errorf("upload image %d: %w", i, err)
		}

		isMain := order == 0
		if _, err := s.Images.Insert(ctx, models.ProductImage{
			ProductID:    productID,
			ImageURL:     up.URL,
			PublicID:     up.PublicID,
			IsMain:       isMain,
			DisplayOrder: order,
		}); err != nil {
			return fmt.Errorf("insert image %d: %w", i, err)
		}

		// keep the denormalized mirror on the product row in sync
		if isMain {
			if err := s.Repo.SetImageURL(ctx, productID, up.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

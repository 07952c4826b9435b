package storage

import "context"

// UploadResult identifies a hosted image: the serving URL plus the
// provider handle needed to delete it later.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the external image-hosting provider. The product service
// and importer only see this interface; tests substitute a fake.
type Uploader interface {
	Upload(ctx context.Context, data []byte, publicID string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

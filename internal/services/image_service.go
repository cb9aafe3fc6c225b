// internal/services/image_service.go
package services

import (
	"context"
	"strings"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
)

// ImageService manages the named image records the aggregation layer
// overlays onto the published content. Saving or deleting a record fires the
// store change feed, which is what makes the site reload its content.
type ImageService struct {
	store store.Store
}

// NewImageService creates the image manager.
func NewImageService(st store.Store) *ImageService {
	return &ImageService{store: st}
}

// List returns all image records, newest first.
func (s *ImageService) List(ctx context.Context) ([]models.ImageRecord, error) {
	images, err := s.store.ListImages(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load images", err)
	}
	return images, nil
}

// Save upserts an image record by name.
func (s *ImageService) Save(ctx context.Context, img *models.ImageRecord) error {
	if strings.TrimSpace(img.Name) == "" {
		return apperrors.NewValidationError("image name is required")
	}
	if strings.TrimSpace(img.URL) == "" {
		return apperrors.NewValidationError("image url is required")
	}

	if err := s.store.SaveImage(ctx, img); err != nil {
		return apperrors.NewStoreError("failed to save image", err)
	}
	return nil
}

// Delete removes an image record by id.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteImage(ctx, id)
	if err == store.ErrNotFound {
		return apperrors.NewNotFoundError("image not found")
	}
	if err != nil {
		return apperrors.NewStoreError("failed to delete image", err)
	}
	return nil
}

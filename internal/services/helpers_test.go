// internal/services/helpers_test.go
package services_test

import (
	"context"
	"errors"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
)

// failingStore wraps a working store and fails every write, for exercising
// the error paths.
type failingStore struct {
	store.Store
}

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) SaveContent(ctx context.Context, id string, content *models.PageContent) error {
	return errStoreDown
}

func (f *failingStore) AddSubmission(ctx context.Context, sub *models.FormSubmission) error {
	return errStoreDown
}

func (f *failingStore) SaveImage(ctx context.Context, img *models.ImageRecord) error {
	return errStoreDown
}

// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/models"
)

// ContentID is the fixed identifier the published content blob is stored
// under. Saves upsert the whole blob at this key.
const ContentID = "main"

// Table names used by the record store.
const (
	TableSiteContent = "site_content"
	TableImages      = "images"
	TableSubmissions = "form_submissions"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: record not found")

// ChangeEvent describes a mutation observed on a table. Delivery is
// at-least-once with no ordering guarantee; consumers treat every event as
// "invalidate and reload".
type ChangeEvent struct {
	Table string
	Op    string // "INSERT", "UPDATE" or "DELETE"
}

// Store is the record-store client. All blocking operations take a context
// so an abandoned HTTP request releases its store work.
type Store interface {
	// Site content blob
	GetContent(ctx context.Context, id string) (*models.PageContent, error)
	SaveContent(ctx context.Context, id string, content *models.PageContent) error

	// Named images
	ListImages(ctx context.Context) ([]models.ImageRecord, error)
	SaveImage(ctx context.Context, img *models.ImageRecord) error
	DeleteImage(ctx context.Context, id int64) error

	// Contact-form submissions
	AddSubmission(ctx context.Context, sub *models.FormSubmission) error
	ListSubmissions(ctx context.Context) ([]models.FormSubmission, error)
	DeleteSubmission(ctx context.Context, id int64) error

	// Subscribe returns a channel of change events for one table. The
	// channel is buffered; events that cannot be delivered are dropped
	// (the next event triggers the same full reload).
	Subscribe(table string) <-chan ChangeEvent

	Close() error
}

// Open creates a store for the configured driver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return OpenPostgres(cfg.DatabaseURL)
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}
}

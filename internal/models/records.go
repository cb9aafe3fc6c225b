// internal/models/records.go
package models

import "time"

// Well-known image record names. The aggregation layer overlays these onto
// the published content when present in the image table.
const (
	ImageHeroBackground = "hero-bg"
	ImagePortrait       = "chuka-portrait"
	ImageBookLoveLasts  = "book-love-lasts"
	ImageBookSpiritual  = "book-spiritual"
	ImageBookMakeWork   = "book-make-work"
)

// ImageRecord is a named, remotely stored image reference. The store owns
// persistence; name is the lookup key and is unique.
type ImageRecord struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// FormSubmission is a visitor contact message. ID and CreatedAt are assigned
// by the store on insert; records are immutable afterwards except deletion.
type FormSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// internal/services/draft_service.go
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

// Draft is an operator's in-progress copy of the page content. It lives only
// in server memory for the duration of the edit session and is never
// partially persisted: Save writes the whole blob or nothing.
type Draft struct {
	Content *models.PageContent `json:"content"`
	Dirty   bool                `json:"dirty"`
}

// DraftService manages edit sessions, one draft per operator session.
type DraftService struct {
	content *ContentService
	store   store.Store
	logger  *utils.Logger

	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewDraftService creates the draft manager.
func NewDraftService(content *ContentService, st store.Store, logger *utils.Logger) *DraftService {
	return &DraftService{
		content: content,
		store:   st,
		logger:  logger,
		drafts:  make(map[string]*Draft),
	}
}

// BeginEdit seeds a fresh draft from the currently published content. An
// existing draft for the session is replaced.
func (s *DraftService) BeginEdit(session string) *Draft {
	draft := &Draft{Content: s.content.Current()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[session] = draft
	return s.snapshot(draft)
}

// Get returns the session's draft, or a not-found error when no edit session
// is open.
func (s *DraftService) Get(session string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[session]
	if !ok {
		return nil, apperrors.NewNotFoundError("no draft in progress")
	}
	return s.snapshot(draft), nil
}

// SetField updates one flat field on the draft and marks it dirty. Section
// headings of the item sections are addressed as field "title". The store is
// never touched.
func (s *DraftService) SetField(session, section, field, value string) error {
	return s.mutate(session, func(c *models.PageContent) error {
		return applyField(c, section, field, value)
	})
}

// SetItemField updates one field of the items[index] record in an item
// section and marks the draft dirty.
func (s *DraftService) SetItemField(session, section string, index int, field, value string) error {
	return s.mutate(session, func(c *models.PageContent) error {
		return applyItemField(c, section, index, field, value)
	})
}

// AddItem appends the kind-appropriate default record to the section's item
// list.
func (s *DraftService) AddItem(session, section string) error {
	return s.mutate(session, func(c *models.PageContent) error {
		switch section {
		case models.SectionServices:
			c.Services.Items = append(c.Services.Items, models.NewDefaultService())
		case models.SectionTestimonials:
			c.Testimonials.Items = append(c.Testimonials.Items, models.NewDefaultTestimonial())
		case models.SectionPodcast:
			c.Podcast.Items = append(c.Podcast.Items, models.NewDefaultPodcast())
		case models.SectionBooks:
			c.Books.Items = append(c.Books.Items, models.NewDefaultBook())
		default:
			return apperrors.NewValidationError(fmt.Sprintf("section %q has no item list", section))
		}
		return nil
	})
}

// RemoveItem deletes items[index] from the section's item list. Subsequent
// indices shift down by one.
func (s *DraftService) RemoveItem(session, section string, index int) error {
	return s.mutate(session, func(c *models.PageContent) error {
		switch section {
		case models.SectionServices:
			items, err := removeAt(c.Services.Items, index)
			if err != nil {
				return err
			}
			c.Services.Items = items
		case models.SectionTestimonials:
			items, err := removeAt(c.Testimonials.Items, index)
			if err != nil {
				return err
			}
			c.Testimonials.Items = items
		case models.SectionPodcast:
			items, err := removeAt(c.Podcast.Items, index)
			if err != nil {
				return err
			}
			c.Podcast.Items = items
		case models.SectionBooks:
			items, err := removeAt(c.Books.Items, index)
			if err != nil {
				return err
			}
			c.Books.Items = items
		default:
			return apperrors.NewValidationError(fmt.Sprintf("section %q has no item list", section))
		}
		return nil
	})
}

// Save persists the whole draft as the new content blob, then republishes it
// as the new baseline and clears the dirty flag. On store failure the draft
// is retained unsaved, dirty stays set and the error surfaces to the caller.
func (s *DraftService) Save(ctx context.Context, session string) error {
	s.mu.Lock()
	draft, ok := s.drafts[session]
	if !ok {
		s.mu.Unlock()
		return apperrors.NewNotFoundError("no draft in progress")
	}
	content := draft.Content.Clone()
	s.mu.Unlock()

	// Single upsert: all-or-nothing from the caller's view.
	if err := s.store.SaveContent(ctx, store.ContentID, content); err != nil {
		s.logger.Error("saving draft failed", map[string]interface{}{"error": err})
		return apperrors.NewStoreError("failed to save content", err)
	}

	s.content.Publish(content)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have logged out while the save was in flight.
	if draft, ok := s.drafts[session]; ok {
		draft.Content = content
		draft.Dirty = false
	}
	return nil
}

// Reset discards the draft's changes and reseeds it from the published
// baseline, clearing dirty.
func (s *DraftService) Reset(session string) (*Draft, error) {
	current := s.content.Current()

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[session]
	if !ok {
		return nil, apperrors.NewNotFoundError("no draft in progress")
	}
	draft.Content = current
	draft.Dirty = false
	return s.snapshot(draft), nil
}

// Discard drops the session's draft entirely (logout).
func (s *DraftService) Discard(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, session)
}

// mutate runs fn against the session's draft under the lock and marks the
// draft dirty when fn succeeds.
func (s *DraftService) mutate(session string, fn func(*models.PageContent) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[session]
	if !ok {
		return apperrors.NewNotFoundError("no draft in progress")
	}
	if err := fn(draft.Content); err != nil {
		return err
	}
	draft.Dirty = true
	return nil
}

// snapshot copies a draft so callers never share the mutable content.
func (s *DraftService) snapshot(draft *Draft) *Draft {
	return &Draft{Content: draft.Content.Clone(), Dirty: draft.Dirty}
}

func removeAt[T any](items []T, index int) ([]T, error) {
	if index < 0 || index >= len(items) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no item at index %d", index))
	}
	return append(items[:index], items[index+1:]...), nil
}

// applyField routes a flat-field update. Field names match the JSON keys the
// admin client sends.
func applyField(c *models.PageContent, section, field, value string) error {
	switch section {
	case models.SectionHero:
		switch field {
		case "headline":
			c.Hero.Headline = value
		case "subheadline":
			c.Hero.Subheadline = value
		case "ctaText":
			c.Hero.CTAText = value
		case "cta2Text":
			c.Hero.CTA2Text = value
		case "cta2Link":
			c.Hero.CTA2Link = value
		case "imageUrl":
			c.Hero.ImageURL = value
		default:
			return unknownField(section, field)
		}
	case models.SectionAbout:
		switch field {
		case "title":
			c.About.Title = value
		case "paragraph1":
			c.About.Paragraph1 = value
		case "paragraph2":
			c.About.Paragraph2 = value
		case "imageUrl":
			c.About.ImageURL = value
		default:
			return unknownField(section, field)
		}
	case models.SectionContact:
		switch field {
		case "title":
			c.Contact.Title = value
		case "description":
			c.Contact.Description = value
		case "imageUrl":
			c.Contact.ImageURL = value
		case "phone":
			c.Contact.Phone = value
		case "email":
			c.Contact.Email = value
		case "location":
			c.Contact.Location = value
		default:
			return unknownField(section, field)
		}
	case models.SectionServices:
		if field != "title" {
			return unknownField(section, field)
		}
		c.Services.Title = value
	case models.SectionTestimonials:
		if field != "title" {
			return unknownField(section, field)
		}
		c.Testimonials.Title = value
	case models.SectionPodcast:
		if field != "title" {
			return unknownField(section, field)
		}
		c.Podcast.Title = value
	case models.SectionBooks:
		if field != "title" {
			return unknownField(section, field)
		}
		c.Books.Title = value
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown section %q", section))
	}
	return nil
}

// applyItemField routes an item-field update within an item section.
func applyItemField(c *models.PageContent, section string, index int, field, value string) error {
	switch section {
	case models.SectionServices:
		if index < 0 || index >= len(c.Services.Items) {
			return apperrors.NewNotFoundError(fmt.Sprintf("no item at index %d", index))
		}
		item := &c.Services.Items[index]
		switch field {
		case "icon":
			item.Icon = value
		case "title":
			item.Title = value
		case "description":
			item.Description = value
		default:
			return unknownField(section, field)
		}
	case models.SectionTestimonials:
		if index < 0 || index >= len(c.Testimonials.Items) {
			return apperrors.NewNotFoundError(fmt.Sprintf("no item at index %d", index))
		}
		item := &c.Testimonials.Items[index]
		switch field {
		case "quote":
			item.Quote = value
		case "author":
			item.Author = value
		case "title":
			item.Title = value
		default:
			return unknownField(section, field)
		}
	case models.SectionPodcast:
		if index < 0 || index >= len(c.Podcast.Items) {
			return apperrors.NewNotFoundError(fmt.Sprintf("no item at index %d", index))
		}
		item := &c.Podcast.Items[index]
		switch field {
		case "imageUrl":
			item.ImageURL = value
		case "title":
			item.Title = value
		case "episode":
			item.Episode = value
		case "description":
			item.Description = value
		case "link":
			item.Link = value
		default:
			return unknownField(section, field)
		}
	case models.SectionBooks:
		if index < 0 || index >= len(c.Books.Items) {
			return apperrors.NewNotFoundError(fmt.Sprintf("no item at index %d", index))
		}
		item := &c.Books.Items[index]
		switch field {
		case "title":
			item.Title = value
		case "author":
			item.Author = value
		case "description":
			item.Description = value
		case "imageUrl":
			item.ImageURL = value
		case "link":
			item.Link = value
		case "imageSlot":
			item.ImageSlot = value
		default:
			return unknownField(section, field)
		}
	default:
		return apperrors.NewValidationError(fmt.Sprintf("section %q has no item list", section))
	}
	return nil
}

func unknownField(section, field string) error {
	return apperrors.NewValidationError(fmt.Sprintf("unknown field %q in section %q", field, section))
}

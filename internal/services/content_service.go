// internal/services/content_service.go
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

// ContentService owns the published page content. It assembles what the site
// renders from three layers: the compiled-in defaults, the persisted blob
// (when one exists) and the named image overrides. It is also the single
// update entry point: everything that changes the published content goes
// through Publish.
type ContentService struct {
	store  store.Store
	logger *utils.Logger

	mu      sync.RWMutex
	current *models.PageContent

	subMu       sync.Mutex
	subscribers []chan *models.PageContent

	stop     chan struct{}
	stopOnce sync.Once
}

// NewContentService creates the service with the defaults published. Call
// Load to pull remote state and Watch to follow store changes.
func NewContentService(st store.Store, logger *utils.Logger) *ContentService {
	return &ContentService{
		store:   st,
		logger:  logger,
		current: models.DefaultContent(),
		stop:    make(chan struct{}),
	}
}

// Load fetches the persisted blob and image records, merges them over the
// defaults and publishes the result. Store errors are logged and swallowed:
// the previously published content stays in effect (fail-open to defaults).
func (s *ContentService) Load(ctx context.Context) {
	content, err := s.store.GetContent(ctx, store.ContentID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("loading site content failed, keeping current content",
				map[string]interface{}{"error": err})
			return
		}
		// No blob saved yet: render the defaults.
		content = models.DefaultContent()
	}

	images, err := s.store.ListImages(ctx)
	if err != nil {
		s.logger.Error("loading image records failed, keeping current content",
			map[string]interface{}{"error": err})
		return
	}

	imageURLs := make(map[string]string, len(images))
	for _, img := range images {
		imageURLs[img.Name] = img.URL
	}

	s.Publish(mergeImages(content, imageURLs))
}

// Watch follows the store change feed for the image and content tables and
// treats every event as "invalidate and reload". At-least-once, no deltas;
// the last completed load wins.
func (s *ContentService) Watch(ctx context.Context) {
	imageEvents := s.store.Subscribe(store.TableImages)
	contentEvents := s.store.Subscribe(store.TableSiteContent)

	go func() {
		for {
			select {
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			case _, ok := <-imageEvents:
				if !ok {
					return
				}
				s.Load(ctx)
			case _, ok := <-contentEvents:
				if !ok {
					return
				}
				s.Load(ctx)
			}
		}
	}()
}

// Current returns a snapshot of the published content.
func (s *ContentService) Current() *models.PageContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Publish replaces the published content and notifies subscribers. This is
// the only mutation path for the read model.
func (s *ContentService) Publish(content *models.PageContent) {
	snapshot := content.Clone()

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot.Clone():
		default:
			// Slow subscriber; it will catch up on the next publish.
		}
	}
}

// SubscribeUpdates returns a channel receiving each newly published content
// snapshot. Used by the WebSocket hub to push updates to open pages.
func (s *ContentService) SubscribeUpdates() <-chan *models.PageContent {
	ch := make(chan *models.PageContent, 4)
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Stop ends the watch goroutine and closes subscriber channels.
func (s *ContentService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for _, ch := range s.subscribers {
			close(ch)
		}
		s.subscribers = nil
	})
}

// mergeImages overlays named image records onto the content. The hero and
// about images use fixed well-known names; each book is matched through its
// own image slot, so list order never decides which cover a book gets.
func mergeImages(content *models.PageContent, imageURLs map[string]string) *models.PageContent {
	merged := content.Clone()

	if url, ok := imageURLs[models.ImageHeroBackground]; ok {
		merged.Hero.ImageURL = url
	}
	if url, ok := imageURLs[models.ImagePortrait]; ok {
		merged.About.ImageURL = url
	}
	for i := range merged.Books.Items {
		slot := merged.Books.Items[i].ImageSlot
		if slot == "" {
			continue
		}
		if url, ok := imageURLs[slot]; ok {
			merged.Books.Items[i].ImageURL = url
		}
	}

	return merged
}

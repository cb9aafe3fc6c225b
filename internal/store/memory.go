// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chukainspires/coachsite/internal/models"
)

// MemoryStore keeps everything in process memory. It is the no-setup driver
// and the fake the service tests run against; it honors the same contract as
// the database backends, including change events.
type MemoryStore struct {
	mu          sync.RWMutex
	content     map[string]*models.PageContent
	images      map[int64]models.ImageRecord
	submissions map[int64]models.FormSubmission
	nextID      int64
	notifier    *notifier
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		content:     make(map[string]*models.PageContent),
		images:      make(map[int64]models.ImageRecord),
		submissions: make(map[int64]models.FormSubmission),
		nextID:      1,
		notifier:    newNotifier(),
	}
}

// GetContent fetches the content blob stored under id.
func (s *MemoryStore) GetContent(ctx context.Context, id string) (*models.PageContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.content[id]
	if !ok {
		return nil, ErrNotFound
	}
	return content.Clone(), nil
}

// SaveContent upserts the whole blob under id.
func (s *MemoryStore) SaveContent(ctx context.Context, id string, content *models.PageContent) error {
	s.mu.Lock()
	_, existed := s.content[id]
	s.content[id] = content.Clone()
	s.mu.Unlock()

	op := "INSERT"
	if existed {
		op = "UPDATE"
	}
	s.notifier.publish(ChangeEvent{Table: TableSiteContent, Op: op})
	return nil
}

// ListImages returns all image records, newest first.
func (s *MemoryStore) ListImages(ctx context.Context) ([]models.ImageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	images := make([]models.ImageRecord, 0, len(s.images))
	for _, img := range s.images {
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool {
		if !images[i].CreatedAt.Equal(images[j].CreatedAt) {
			return images[i].CreatedAt.After(images[j].CreatedAt)
		}
		return images[i].ID > images[j].ID
	})
	return images, nil
}

// SaveImage upserts by name and assigns an id and timestamp on insert.
func (s *MemoryStore) SaveImage(ctx context.Context, img *models.ImageRecord) error {
	s.mu.Lock()
	op := "INSERT"
	for id, existing := range s.images {
		if existing.Name == img.Name {
			img.ID = id
			img.CreatedAt = existing.CreatedAt
			op = "UPDATE"
			break
		}
	}
	if op == "INSERT" {
		img.ID = s.nextID
		s.nextID++
		img.CreatedAt = time.Now()
	}
	s.images[img.ID] = *img
	s.mu.Unlock()

	s.notifier.publish(ChangeEvent{Table: TableImages, Op: op})
	return nil
}

// DeleteImage removes an image record by id.
func (s *MemoryStore) DeleteImage(ctx context.Context, id int64) error {
	s.mu.Lock()
	_, ok := s.images[id]
	if ok {
		delete(s.images, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.notifier.publish(ChangeEvent{Table: TableImages, Op: "DELETE"})
	return nil
}

// AddSubmission inserts a contact message, assigning id and created_at.
func (s *MemoryStore) AddSubmission(ctx context.Context, sub *models.FormSubmission) error {
	s.mu.Lock()
	sub.ID = s.nextID
	s.nextID++
	sub.CreatedAt = time.Now()
	s.submissions[sub.ID] = *sub
	s.mu.Unlock()

	s.notifier.publish(ChangeEvent{Table: TableSubmissions, Op: "INSERT"})
	return nil
}

// ListSubmissions returns all contact messages, newest first.
func (s *MemoryStore) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := make([]models.FormSubmission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].CreatedAt.After(subs[j].CreatedAt)
		}
		return subs[i].ID > subs[j].ID
	})
	return subs, nil
}

// DeleteSubmission removes a contact message by id.
func (s *MemoryStore) DeleteSubmission(ctx context.Context, id int64) error {
	s.mu.Lock()
	_, ok := s.submissions[id]
	if ok {
		delete(s.submissions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.notifier.publish(ChangeEvent{Table: TableSubmissions, Op: "DELETE"})
	return nil
}

// Subscribe returns a change-event channel for table.
func (s *MemoryStore) Subscribe(table string) <-chan ChangeEvent {
	return s.notifier.subscribe(table)
}

// Close closes all subscriber channels.
func (s *MemoryStore) Close() error {
	s.notifier.closeAll()
	return nil
}

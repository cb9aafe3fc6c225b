// internal/store/memory_test.go
package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
)

func TestContent_Roundtrip(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	_, err := s.GetContent(ctx, store.ContentID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	saved := models.DefaultContent()
	saved.Hero.Headline = "Stored"
	require.NoError(t, s.SaveContent(ctx, store.ContentID, saved))

	got, err := s.GetContent(ctx, store.ContentID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// The stored blob is isolated from later caller mutations
	saved.Hero.Headline = "mutated"
	got, err = s.GetContent(ctx, store.ContentID)
	require.NoError(t, err)
	assert.Equal(t, "Stored", got.Hero.Headline)
}

func TestSaveContent_OverwritesWholeBlob(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	first := models.DefaultContent()
	require.NoError(t, s.SaveContent(ctx, store.ContentID, first))

	second := models.DefaultContent()
	second.Books.Items = second.Books.Items[:1]
	require.NoError(t, s.SaveContent(ctx, store.ContentID, second))

	got, err := s.GetContent(ctx, store.ContentID)
	require.NoError(t, err)
	assert.Len(t, got.Books.Items, 1)
}

func TestImages_UpsertByName(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	img := &models.ImageRecord{Name: "hero-bg", URL: "https://a.example/1.jpg", Category: "hero"}
	require.NoError(t, s.SaveImage(ctx, img))
	assert.NotZero(t, img.ID)
	firstID := img.ID

	replacement := &models.ImageRecord{Name: "hero-bg", URL: "https://a.example/2.jpg", Category: "hero"}
	require.NoError(t, s.SaveImage(ctx, replacement))
	assert.Equal(t, firstID, replacement.ID, "upsert by name keeps the id")

	images, err := s.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://a.example/2.jpg", images[0].URL)
}

func TestDeleteImage_Missing(t *testing.T) {
	s := store.NewMemory()
	assert.ErrorIs(t, s.DeleteImage(context.Background(), 7), store.ErrNotFound)
}

func TestSubmissions_NewestFirst(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.AddSubmission(ctx, &models.FormSubmission{
			Name: name, Email: name + "@example.com", Message: "hello there",
		}))
	}

	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "third", subs[0].Name)
	assert.Equal(t, "first", subs[2].Name)
}

func TestSubscribe_EmitsChangeEvents(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	events := s.Subscribe(store.TableImages)

	img := &models.ImageRecord{Name: "hero-bg", URL: "https://a.example/1.jpg"}
	require.NoError(t, s.SaveImage(ctx, img))

	select {
	case ev := <-events:
		assert.Equal(t, store.TableImages, ev.Table)
		assert.Equal(t, "INSERT", ev.Op)
	case <-time.After(time.Second):
		t.Fatal("expected an insert event")
	}

	require.NoError(t, s.DeleteImage(ctx, img.ID))

	select {
	case ev := <-events:
		assert.Equal(t, "DELETE", ev.Op)
	case <-time.After(time.Second):
		t.Fatal("expected a delete event")
	}
}

func TestSubscribe_PerTableFiltering(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	imageEvents := s.Subscribe(store.TableImages)

	require.NoError(t, s.AddSubmission(ctx, &models.FormSubmission{
		Name: "n", Email: "n@example.com", Message: "hello there",
	}))

	select {
	case ev := <-imageEvents:
		t.Fatalf("image subscriber received %v for a submissions write", ev)
	case <-time.After(100 * time.Millisecond):
		// correct: no cross-table delivery
	}
}

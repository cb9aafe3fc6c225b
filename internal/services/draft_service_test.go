// internal/services/draft_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

const session = "session-1"

func newDraftFixture(st store.Store) (*services.ContentService, *services.DraftService) {
	logger := utils.GetLogger()
	content := services.NewContentService(st, logger)
	return content, services.NewDraftService(content, st, logger)
}

func TestBeginEdit_SeedsFromPublished(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())

	draft := drafts.BeginEdit(session)
	assert.False(t, draft.Dirty)
	assert.Equal(t, models.DefaultContent(), draft.Content)
}

func TestSetField_MarksDirtyWithoutTouchingStore(t *testing.T) {
	st := store.NewMemory()
	_, drafts := newDraftFixture(st)
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "hero", "headline", "New headline"))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	assert.True(t, draft.Dirty)
	assert.Equal(t, "New headline", draft.Content.Hero.Headline)

	// Nothing persisted until Save
	_, err = st.GetContent(context.Background(), store.ContentID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetField_SectionHeadings(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "books", "title", "Published Works"))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	assert.Equal(t, "Published Works", draft.Content.Books.Title)
}

func TestSetField_UnknownSectionOrField(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	assert.True(t, apperrors.IsValidationError(drafts.SetField(session, "footer", "text", "x")))
	assert.True(t, apperrors.IsValidationError(drafts.SetField(session, "hero", "bogus", "x")))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	assert.False(t, draft.Dirty, "failed mutation must not mark the draft dirty")
}

func TestSetItemField_UpdatesOneRecord(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetItemField(session, "testimonials", 1, "author", "Mark Twain"))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	assert.Equal(t, "Mark Twain", draft.Content.Testimonials.Items[1].Author)
	// Neighbors untouched
	assert.Equal(t, "Jane D.", draft.Content.Testimonials.Items[0].Author)
}

func TestSetItemField_IndexOutOfRange(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	assert.True(t, apperrors.IsNotFoundError(drafts.SetItemField(session, "services", 99, "title", "x")))
	assert.True(t, apperrors.IsNotFoundError(drafts.SetItemField(session, "services", -1, "title", "x")))
}

func TestAddThenRemoveLastRestoresSequence(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	before, err := drafts.Get(session)
	require.NoError(t, err)

	require.NoError(t, drafts.AddItem(session, "services"))
	require.NoError(t, drafts.RemoveItem(session, "services", len(before.Content.Services.Items)))

	after, err := drafts.Get(session)
	require.NoError(t, err)
	assert.Equal(t, before.Content.Services.Items, after.Content.Services.Items)
}

func TestAddItem_AppendsKindDefault(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	require.NoError(t, drafts.AddItem(session, "books"))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	items := draft.Content.Books.Items
	require.Len(t, items, 4)
	assert.Equal(t, models.NewDefaultBook(), items[3])
}

func TestRemoveItem_ShiftsSubsequentIndices(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	require.NoError(t, drafts.RemoveItem(session, "podcast", 0))

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	require.Len(t, draft.Content.Podcast.Items, 2)
	assert.Equal(t, "Apple", draft.Content.Podcast.Items[0].Title)
	assert.Equal(t, "YouTube", draft.Content.Podcast.Items[1].Title)
}

func TestSave_PersistsAndRepublishes(t *testing.T) {
	st := store.NewMemory()
	content, drafts := newDraftFixture(st)
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "hero", "headline", "Saved headline"))
	require.NoError(t, drafts.Save(context.Background(), session))

	// Persisted as the whole blob
	stored, err := st.GetContent(context.Background(), store.ContentID)
	require.NoError(t, err)
	assert.Equal(t, "Saved headline", stored.Hero.Headline)

	// Republished as the read model
	assert.Equal(t, "Saved headline", content.Current().Hero.Headline)

	draft, err := drafts.Get(session)
	require.NoError(t, err)
	assert.False(t, draft.Dirty)
}

func TestSaveThenReset_IsNoOp(t *testing.T) {
	st := store.NewMemory()
	_, drafts := newDraftFixture(st)
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "about", "title", "About the author"))
	require.NoError(t, drafts.Save(context.Background(), session))

	saved, err := drafts.Get(session)
	require.NoError(t, err)

	reset, err := drafts.Reset(session)
	require.NoError(t, err)
	assert.Equal(t, saved.Content, reset.Content)
	assert.False(t, reset.Dirty)
}

func TestSaveFailure_KeepsDraftDirty(t *testing.T) {
	_, drafts := newDraftFixture(&failingStore{Store: store.NewMemory()})
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "hero", "headline", "Unsaved headline"))

	err := drafts.Save(context.Background(), session)
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreError(err))

	draft, getErr := drafts.Get(session)
	require.NoError(t, getErr)
	assert.True(t, draft.Dirty, "failed save must leave the draft dirty")
	assert.Equal(t, "Unsaved headline", draft.Content.Hero.Headline, "failed save must retain the draft")
}

func TestReset_DiscardsChanges(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)

	require.NoError(t, drafts.SetField(session, "hero", "headline", "Scratch"))

	reset, err := drafts.Reset(session)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultContent().Hero.Headline, reset.Content.Hero.Headline)
	assert.False(t, reset.Dirty)
}

func TestDiscard_EndsSession(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())
	drafts.BeginEdit(session)
	drafts.Discard(session)

	_, err := drafts.Get(session)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestOperations_WithoutDraft(t *testing.T) {
	_, drafts := newDraftFixture(store.NewMemory())

	assert.True(t, apperrors.IsNotFoundError(drafts.SetField(session, "hero", "headline", "x")))
	assert.True(t, apperrors.IsNotFoundError(drafts.Save(context.Background(), session)))
	_, err := drafts.Reset(session)
	assert.True(t, apperrors.IsNotFoundError(err))
}

package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/princinho/sahoadmin/editor"
	"github.com/princinho/sahoadmin/listing"
	"github.com/princinho/sahoadmin/previews"
	"github.com/stretchr/testify/require"
)

type skuOnlyAPI struct {
	editor.ProductAPI
}

func (skuOnlyAPI) ListSKUs(context.Context) ([]string, error) { return nil, nil }

func newDraftWithPreview(t *testing.T, store previews.Store) (*editor.ProductDraft, string) {
	t.Helper()
	ctx := context.Background()
	d := editor.NewProductDraft(ctx, skuOnlyAPI{}, store, editor.NewSKUGenerator(nil))
	att, err := d.Attach(ctx, "a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	return d, att.ID
}

func TestGetCreatesDefaultListState(t *testing.T) {
	w := New()
	e := w.Get("s1")
	require.Equal(t, listing.NewState(), e.List())
	require.Same(t, e, w.Get("s1"))

	s, err := e.UpdateList(func(s *listing.State) error {
		_, err := s.SetPageSize(10)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 10, s.PageSize)

	_, err = e.UpdateList(func(s *listing.State) error {
		_, err := s.SetPageSize(7)
		return err
	})
	require.ErrorIs(t, err, listing.ErrPageSize)
	require.Equal(t, 10, e.List().PageSize)
}

func TestReplacingDraftClosesPrevious(t *testing.T) {
	store := previews.NewMemoryStore()
	w := New()
	e := w.Get("s1")
	ctx := context.Background()

	first, key := newDraftWithPreview(t, store)
	e.SetDraft(ctx, first)
	require.True(t, e.OwnsPreview(key))

	second, _ := newDraftWithPreview(t, store)
	e.SetDraft(ctx, second)
	require.False(t, e.OwnsPreview(key))
	require.Equal(t, 1, store.Len())

	e.CloseDraft(ctx, first)
	require.Same(t, second, e.Draft())
}

func TestDropReleasesPreviews(t *testing.T) {
	store := previews.NewMemoryStore()
	w := New()
	ctx := context.Background()
	d, _ := newDraftWithPreview(t, store)
	w.Get("s1").SetDraft(ctx, d)

	w.Drop(ctx, "s1")
	require.Equal(t, 0, store.Len())
	require.Equal(t, 0, w.Len())
}

func TestSweep(t *testing.T) {
	store := previews.NewMemoryStore()
	w := New()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }
	ctx := context.Background()

	d, _ := newDraftWithPreview(t, store)
	w.Get("old").SetDraft(ctx, d)
	now = now.Add(2 * time.Hour)
	w.Get("fresh")
	w.Get("loggedout")

	n := w.Sweep(ctx, time.Hour, func(id string) bool { return id != "loggedout" })
	require.Equal(t, 2, n)
	require.Equal(t, 1, w.Len())
	require.Equal(t, 0, store.Len())
}

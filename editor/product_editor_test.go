package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
	"github.com/princinho/sahoadmin/previews"
	"github.com/stretchr/testify/require"
)

func openEditor(t *testing.T) (*ProductEditor, *fakeAPI, *previews.MemoryStore) {
	t.Helper()
	api := newFakeAPI()
	store := previews.NewMemoryStore()
	e, err := OpenProductEditor(context.Background(), api, store, "p1")
	require.NoError(t, err)
	return e, api, store
}

func strPtr(s string) *string { return &s }

func TestOpenKeepsPersistedImages(t *testing.T) {
	e, _, _ := openEditor(t)
	v := e.View()
	require.Equal(t, "c1", v.Fields.Category)
	require.Len(t, v.Colors, 2)
	require.Equal(t, []models.Image{{Id: "i1", Url: "https://cdn/red-1.png"}, {Id: "i2", Url: "https://cdn/red-2.png"}}, v.Colors[0].Images)
	require.Equal(t, SlotClosed, v.Color.Mode)
	require.Empty(t, v.Warnings)
}

func TestSubmitCoreSendsSpecificationsWholesale(t *testing.T) {
	e, api, _ := openEditor(t)
	ctx := context.Background()

	require.NoError(t, e.AddSpec())
	require.NoError(t, e.UpdateSpec(1, dto.SpecificationDTO{Key: "Material", Value: "Leather"}))
	require.NoError(t, e.RemoveSpec(0))
	require.ErrorIs(t, e.RemoveSpec(5), ErrSpecIndex)
	require.NoError(t, e.SetFields(dto.ProductFieldsDTO{Title: strPtr("Crimson Shoe")}))

	require.NoError(t, e.SubmitCore(ctx))
	require.Len(t, api.updated, 1)
	require.Equal(t, "Crimson Shoe", api.updated[0].Title)
	require.Equal(t, []models.Specification{{Key: "Material", Value: "Leather"}}, api.updated[0].Specifications)
}

func TestSubmitCoreIsSingleFlight(t *testing.T) {
	e, api, _ := openEditor(t)
	api.block = make(chan struct{})
	api.entered = make(chan struct{})
	before := api.callCount()

	done := make(chan error, 1)
	go func() { done <- e.SubmitCore(context.Background()) }()
	<-api.entered

	require.True(t, e.View().Submitting)
	require.ErrorIs(t, e.SubmitCore(context.Background()), ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	require.Equal(t, before+1, api.callCount())
	require.False(t, e.View().Submitting)
}

func TestSubmitCoreFailureKeepsFields(t *testing.T) {
	e, api, _ := openEditor(t)
	api.updateErr = &catalog.APIError{Status: 400, Message: "title is required"}
	require.NoError(t, e.SetFields(dto.ProductFieldsDTO{Title: strPtr("")}))

	err := e.SubmitCore(context.Background())
	var ae *catalog.APIError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "", e.View().Fields.Title)
	require.False(t, e.View().Submitting)
}

func TestSwitchingColorModeReleasesAttachments(t *testing.T) {
	e, _, store := openEditor(t)
	ctx := context.Background()

	require.NoError(t, e.StartAddColor(ctx))
	att, err := e.Attach(ctx, "a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	require.True(t, e.OwnsPreview(att.ID))
	require.Equal(t, 1, store.Len())

	require.NoError(t, e.StartEditColor(ctx, "red"))
	require.Equal(t, 0, store.Len())
	require.False(t, e.OwnsPreview(att.ID))
	require.Equal(t, SlotEditing, e.View().Color.Mode)

	require.ErrorIs(t, e.StartEditColor(ctx, "green"), ErrColorNotFound)
}

func TestDiscardAttachmentMakesNoCall(t *testing.T) {
	e, api, store := openEditor(t)
	ctx := context.Background()
	require.NoError(t, e.StartAddColor(ctx))
	att, err := e.Attach(ctx, "a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	before := api.callCount()

	require.NoError(t, e.DiscardAttachment(ctx, att.ID))
	require.Equal(t, before, api.callCount())
	require.Equal(t, 0, store.Len())
	require.ErrorIs(t, e.DiscardAttachment(ctx, att.ID), ErrAttachmentNotFound)
}

func TestAttachNeedsColorSlot(t *testing.T) {
	e, _, _ := openEditor(t)
	_, err := e.Attach(context.Background(), "a.png", "image/png", []byte("x"))
	require.ErrorIs(t, err, ErrNoColorSlot)
}

func TestRemovePersistedImage(t *testing.T) {
	t.Run("OnlyWhileEditing", func(t *testing.T) {
		e, api, _ := openEditor(t)
		require.NoError(t, e.StartAddColor(context.Background()))
		before := api.callCount()
		err := e.RemovePersistedImage(context.Background(), "https://cdn/red-1.png")
		require.ErrorIs(t, err, ErrNotEditingColor)
		require.Equal(t, before, api.callCount())
	})

	t.Run("OneCallThenLocalRemoval", func(t *testing.T) {
		e, api, _ := openEditor(t)
		ctx := context.Background()
		require.NoError(t, e.StartEditColor(ctx, "red"))
		before := api.callCount()

		require.NoError(t, e.RemovePersistedImage(ctx, "https://cdn/red-1.png"))
		require.Equal(t, before+1, api.callCount())
		require.Equal(t, []string{"https://cdn/red-1.png"}, api.removed)

		v := e.View()
		require.Equal(t, []models.Image{{Id: "i2", Url: "https://cdn/red-2.png"}}, v.Color.Images)
		require.Equal(t, []models.Image{{Id: "i2", Url: "https://cdn/red-2.png"}}, v.Colors[0].Images)
	})

	t.Run("FailureKeepsImage", func(t *testing.T) {
		e, api, _ := openEditor(t)
		ctx := context.Background()
		api.removeErr = &catalog.TransportError{Op: "DELETE", Err: errors.New("reset")}
		require.NoError(t, e.StartEditColor(ctx, "red"))

		require.Error(t, e.RemovePersistedImage(ctx, "https://cdn/red-1.png"))
		require.Len(t, e.View().Color.Images, 2)
	})

	t.Run("UnknownURL", func(t *testing.T) {
		e, _, _ := openEditor(t)
		require.NoError(t, e.StartEditColor(context.Background(), "red"))
		require.ErrorIs(t, e.RemovePersistedImage(context.Background(), "https://cdn/other.png"), ErrImageNotFound)
	})
}

func TestSubmitColorEditingSendsRetainedAndNew(t *testing.T) {
	e, api, store := openEditor(t)
	ctx := context.Background()

	require.NoError(t, e.StartEditColor(ctx, "red"))
	require.NoError(t, e.SetColorFields(dto.ColorFieldsDTO{ColorName: strPtr("Scarlet")}))
	require.ErrorIs(t, e.SetColorFields(dto.ColorFieldsDTO{HexCode: strPtr("red")}), ErrInvalidHex)
	_, err := e.Attach(ctx, "new.png", "image/png", []byte("png"))
	require.NoError(t, err)

	require.NoError(t, e.SubmitColor(ctx))
	require.Len(t, api.colorUpdates, 1)
	up := api.colorUpdates[0]
	require.Equal(t, "red", up.colorID)
	require.Equal(t, "Scarlet", up.color.ColorName)
	require.Equal(t, "#ff0000", up.color.HexCode)
	require.Equal(t, []models.Image{{Id: "i1", Url: "https://cdn/red-1.png"}, {Id: "i2", Url: "https://cdn/red-2.png"}}, up.retained)
	require.Equal(t, []string{"new.png"}, up.files)

	require.Equal(t, 0, store.Len())
	require.Equal(t, SlotClosed, e.View().Color.Mode)
}

func TestSubmitColorAddingRefetches(t *testing.T) {
	e, api, _ := openEditor(t)
	ctx := context.Background()
	require.ErrorIs(t, e.SubmitColor(ctx), ErrNoColorSlot)

	require.NoError(t, e.StartAddColor(ctx))
	require.Equal(t, "#000000", e.View().Color.HexCode)
	require.NoError(t, e.SetColorFields(dto.ColorFieldsDTO{ColorName: strPtr("Green"), HexCode: strPtr("#00ff00")}))

	require.NoError(t, e.SubmitColor(ctx))
	require.Equal(t, "AddColor", api.calls[len(api.calls)-2])
	require.Equal(t, "GetProduct p1", api.calls[len(api.calls)-1])
	require.Len(t, e.View().Colors, 3)
}

func TestColorDeleteNeedsConfirmation(t *testing.T) {
	e, api, _ := openEditor(t)
	ctx := context.Background()

	require.ErrorIs(t, e.ConfirmColorDelete(ctx, true), ErrNoPendingDelete)
	require.ErrorIs(t, e.RequestColorDelete("green"), ErrColorNotFound)

	require.NoError(t, e.RequestColorDelete("blue"))
	require.Equal(t, "blue", e.View().PendingColorDelete)
	before := api.callCount()

	require.ErrorIs(t, e.ConfirmColorDelete(ctx, false), ErrNotConfirmed)
	require.Equal(t, before, api.callCount())
	require.Len(t, e.View().Colors, 2)
	require.Empty(t, e.View().PendingColorDelete)

	require.NoError(t, e.RequestColorDelete("blue"))
	require.NoError(t, e.ConfirmColorDelete(ctx, true))
	require.Equal(t, []string{"blue"}, api.deleted)
	require.Len(t, e.View().Colors, 1)
}

func TestWarningsFlagDefaultColorCount(t *testing.T) {
	api := newFakeAPI()
	api.product.Colors[1].IsDefault = true
	e, err := OpenProductEditor(context.Background(), api, previews.NewMemoryStore(), "p1")
	require.NoError(t, err)
	require.Len(t, e.Warnings(), 1)
}

func TestCloseReleasesEverything(t *testing.T) {
	e, _, store := openEditor(t)
	ctx := context.Background()
	require.NoError(t, e.StartAddColor(ctx))
	_, err := e.Attach(ctx, "a.png", "image/png", []byte("a"))
	require.NoError(t, err)
	_, err = e.Attach(ctx, "b.png", "image/png", []byte("b"))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	e.Close(ctx)
	require.Equal(t, 0, store.Len())
	require.ErrorIs(t, e.SetFields(dto.ProductFieldsDTO{}), ErrClosed)
	require.ErrorIs(t, e.SubmitCore(ctx), ErrClosed)
}

func TestSubmitColorKeepsImagesAttachedInFlight(t *testing.T) {
	ctx := context.Background()

	t.Run("Editing", func(t *testing.T) {
		e, api, store := openEditor(t)
		require.NoError(t, e.StartEditColor(ctx, "red"))
		_, err := e.Attach(ctx, "first.png", "image/png", []byte("one"))
		require.NoError(t, err)

		api.block = make(chan struct{})
		api.entered = make(chan struct{})
		done := make(chan error, 1)
		go func() { done <- e.SubmitColor(ctx) }()
		<-api.entered

		require.ErrorIs(t, e.SubmitColor(ctx), ErrBusy)
		late, err := e.Attach(ctx, "late.png", "image/png", []byte("two"))
		require.NoError(t, err)
		close(api.block)
		require.NoError(t, <-done)

		require.Len(t, api.colorUpdates, 1)
		require.Equal(t, []string{"first.png"}, api.colorUpdates[0].files)
		v := e.View()
		require.Equal(t, SlotEditing, v.Color.Mode)
		require.Equal(t, "red", v.Color.ColorID)
		require.Len(t, v.Color.Attachments, 1)
		require.Equal(t, late.ID, v.Color.Attachments[0].ID)
		require.Equal(t, 1, store.Len())
		require.True(t, e.OwnsPreview(late.ID))
	})

	t.Run("Adding", func(t *testing.T) {
		e, api, store := openEditor(t)
		require.NoError(t, e.StartAddColor(ctx))
		require.NoError(t, e.SetColorFields(dto.ColorFieldsDTO{ColorName: strPtr("Green"), HexCode: strPtr("#00ff00")}))

		api.block = make(chan struct{})
		api.entered = make(chan struct{})
		done := make(chan error, 1)
		go func() { done <- e.SubmitColor(ctx) }()
		<-api.entered

		late, err := e.Attach(ctx, "late.png", "image/png", []byte("two"))
		require.NoError(t, err)
		close(api.block)
		require.NoError(t, <-done)

		v := e.View()
		require.Equal(t, SlotAdding, v.Color.Mode)
		require.Empty(t, v.Color.ColorName)
		require.Equal(t, "#000000", v.Color.HexCode)
		require.Len(t, v.Color.Attachments, 1)
		require.Equal(t, late.ID, v.Color.Attachments[0].ID)
		require.Equal(t, 1, store.Len())
	})
}

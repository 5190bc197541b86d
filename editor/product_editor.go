package editor

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
	"github.com/princinho/sahoadmin/previews"
	"github.com/sirupsen/logrus"
)

// ProductEditor is the in-progress edit of one persisted product: its core
// fields, its colors as last fetched, and at most one color form.
//
// Core fields go out in one request (SubmitCore) guarded against duplicate
// submission. Color add/update/delete and image removal go to their own
// endpoints and are not guarded; the catalog serializes writes per product.
type ProductEditor struct {
	api       ProductAPI
	store     previews.Store
	productID string

	mu            sync.Mutex
	fields        Fields
	colors        []models.Color
	slot          ColorSlot
	pendingDelete string
	submitting    bool
	closed        bool
}

// OpenProductEditor fetches the product and starts an edit of it.
func OpenProductEditor(ctx context.Context, api ProductAPI, store previews.Store, productID string) (*ProductEditor, error) {
	p, err := api.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	e := &ProductEditor{
		api:       api,
		store:     store,
		productID: productID,
		slot:      Closed{},
	}
	e.load(p)
	e.fields = fieldsOf(p)
	return e, nil
}

func (e *ProductEditor) ProductID() string { return e.productID }

// load replaces the colors with the fetched ones.
func (e *ProductEditor) load(p *models.Product) {
	colors := make([]models.Color, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, cloneColor(c))
	}
	e.colors = colors
}

// EditorView is the JSON shape of the editor.
type EditorView struct {
	ProductID          string         `json:"productId"`
	Fields             Fields         `json:"fields"`
	Colors             []models.Color `json:"colors"`
	Color              SlotView       `json:"color"`
	PendingColorDelete string         `json:"pendingColorDelete,omitempty"`
	Submitting         bool           `json:"submitting"`
	Warnings           []string       `json:"warnings"`
}

func (e *ProductEditor) View() EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()
	colors := make([]models.Color, 0, len(e.colors))
	for _, c := range e.colors {
		colors = append(colors, cloneColor(c))
	}
	return EditorView{
		ProductID:          e.productID,
		Fields:             e.fields.clone(),
		Colors:             colors,
		Color:              viewOf(e.slot),
		PendingColorDelete: e.pendingDelete,
		Submitting:         e.submitting,
		Warnings:           e.warningsLocked(),
	}
}

// Warnings flags a product without exactly one default color. It is not
// enforced: the catalog's behavior on a violation is unknown.
func (e *ProductEditor) Warnings() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warningsLocked()
}

func (e *ProductEditor) warningsLocked() []string {
	n := 0
	for _, c := range e.colors {
		if c.IsDefault {
			n++
		}
	}
	if n == 1 || len(e.colors) == 0 {
		return []string{}
	}
	return []string{fmt.Sprintf("product has %d default colors; exactly one is expected", n)}
}

func (e *ProductEditor) SetFields(patch dto.ProductFieldsDTO) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.fields.apply(patch)
	return nil
}

func (e *ProductEditor) AddSpec() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.fields.addSpec()
	return nil
}

func (e *ProductEditor) UpdateSpec(i int, spec dto.SpecificationDTO) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.fields.updateSpec(i, spec)
}

func (e *ProductEditor) RemoveSpec(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.fields.removeSpec(i)
}

// SubmitCore sends the scalar fields and the whole specifications list.
// While a submission is in flight further calls return ErrBusy without
// sending anything.
func (e *ProductEditor) SubmitCore(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.submitting {
		e.mu.Unlock()
		return ErrBusy
	}
	e.submitting = true
	payload := e.fields.updateDTO()
	e.mu.Unlock()

	err := e.api.UpdateProduct(ctx, e.productID, payload)

	e.mu.Lock()
	e.submitting = false
	e.mu.Unlock()
	return err
}

// StartAddColor opens an empty color form. Attachments of a previous
// color form are released.
func (e *ProductEditor) StartAddColor(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.slot.uploads().releaseAll(ctx)
	e.slot = &Adding{
		Color: ColorFields{HexCode: defaultHexCode},
		files: newAttachments(e.store),
	}
	return nil
}

// StartEditColor opens the form on a copy of an existing color.
func (e *ProductEditor) StartEditColor(ctx context.Context, colorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	i := e.colorIndex(colorID)
	if i < 0 {
		return ErrColorNotFound
	}
	e.slot.uploads().releaseAll(ctx)
	e.slot = &Editing{
		Color: cloneColor(e.colors[i]),
		files: newAttachments(e.store),
	}
	return nil
}

// CloseColor abandons the color form and releases its attachments.
func (e *ProductEditor) CloseColor(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slot.uploads().releaseAll(ctx)
	e.slot = Closed{}
}

func (e *ProductEditor) SetColorFields(patch dto.ColorFieldsDTO) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch s := e.slot.(type) {
	case *Adding:
		return s.Color.apply(patch)
	case *Editing:
		cf := ColorFields{ColorName: s.Color.ColorName, HexCode: s.Color.HexCode}
		if err := cf.apply(patch); err != nil {
			return err
		}
		s.Color.ColorName, s.Color.HexCode = cf.ColorName, cf.HexCode
		return nil
	}
	return ErrNoColorSlot
}

// Attach stages a new image on the open color form.
func (e *ProductEditor) Attach(ctx context.Context, fileName, contentType string, data []byte) (Attachment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	files := e.slot.uploads()
	if files == nil {
		return Attachment{}, ErrNoColorSlot
	}
	return files.add(ctx, fileName, contentType, data)
}

// DiscardAttachment drops a not-yet-uploaded image and releases its
// preview. It never calls the catalog.
func (e *ProductEditor) DiscardAttachment(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	files := e.slot.uploads()
	if files == nil {
		return ErrNoColorSlot
	}
	return files.discard(ctx, id)
}

// OwnsPreview reports whether key belongs to one of the editor's
// attachments.
func (e *ProductEditor) OwnsPreview(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slot.uploads().has(key)
}

// RemovePersistedImage deletes one persisted image of the color being
// edited right away. Local state changes only once the catalog confirms.
func (e *ProductEditor) RemovePersistedImage(ctx context.Context, imageURL string) error {
	e.mu.Lock()
	ed, ok := e.slot.(*Editing)
	if !ok {
		e.mu.Unlock()
		return ErrNotEditingColor
	}
	if !ed.Color.HasImage(imageURL) {
		e.mu.Unlock()
		return ErrImageNotFound
	}
	colorID := ed.Color.Id
	e.mu.Unlock()

	if err := e.api.RemoveColorImage(ctx, e.productID, colorID, imageURL); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	dropImage := func(imgs []models.Image) []models.Image {
		return slices.DeleteFunc(imgs, func(img models.Image) bool { return img.Url == imageURL })
	}
	ed.Color.Images = dropImage(ed.Color.Images)
	if i := e.colorIndex(colorID); i >= 0 {
		e.colors[i].Images = dropImage(e.colors[i].Images)
	}
	return nil
}

// SubmitColor creates (Adding) or updates (Editing) the color in the form.
// On success the uploaded attachments are released and the product's
// colors are fetched again. The form closes unless images were attached
// while the request was in flight: those stay in the form, which for an
// added color becomes a fresh Adding form.
func (e *ProductEditor) SubmitColor(ctx context.Context) error {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return ErrBusy
	}
	slot := e.slot
	var call func() error
	switch s := slot.(type) {
	case *Adding:
		meta := dto.ColorDTO{ColorName: s.Color.ColorName, HexCode: s.Color.HexCode}
		files := s.files.files()
		call = func() error { return e.api.AddColor(ctx, e.productID, meta, files) }
	case *Editing:
		meta := dto.ColorDTO{ColorName: s.Color.ColorName, HexCode: s.Color.HexCode}
		retained := append([]models.Image{}, s.Color.Images...)
		files := s.files.files()
		colorID := s.Color.Id
		call = func() error { return e.api.UpdateColor(ctx, e.productID, colorID, meta, retained, files) }
	default:
		e.mu.Unlock()
		return ErrNoColorSlot
	}
	sent := slot.uploads().ids()
	e.submitting = true
	e.mu.Unlock()

	err := call()

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.mu.Unlock()
		return err
	}
	files := slot.uploads()
	files.releaseSent(ctx, sent)
	if e.slot == slot {
		switch {
		case files.empty():
			e.slot = Closed{}
		case slot.Mode() == SlotAdding:
			e.slot = &Adding{Color: ColorFields{HexCode: defaultHexCode}, files: files}
		}
	}
	e.mu.Unlock()

	e.refresh(ctx)
	return nil
}

// RequestColorDelete asks for confirmation before deleting a color.
func (e *ProductEditor) RequestColorDelete(colorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.colorIndex(colorID) < 0 {
		return ErrColorNotFound
	}
	e.pendingDelete = colorID
	return nil
}

// ConfirmColorDelete deletes the pending color only when ack is true.
// Without it the request is dropped and nothing is sent.
func (e *ProductEditor) ConfirmColorDelete(ctx context.Context, ack bool) error {
	e.mu.Lock()
	colorID := e.pendingDelete
	if colorID == "" {
		e.mu.Unlock()
		return ErrNoPendingDelete
	}
	if !ack {
		e.pendingDelete = ""
		e.mu.Unlock()
		return ErrNotConfirmed
	}
	e.mu.Unlock()

	if err := e.api.DeleteColor(ctx, e.productID, colorID); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.colorIndex(colorID); i >= 0 {
		e.colors = slices.Delete(e.colors, i, i+1)
	}
	if ed, ok := e.slot.(*Editing); ok && ed.Color.Id == colorID {
		ed.files.releaseAll(ctx)
		e.slot = Closed{}
	}
	if e.pendingDelete == colorID {
		e.pendingDelete = ""
	}
	return nil
}

// Close ends the edit and releases every preview it still holds.
func (e *ProductEditor) Close(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slot.uploads().releaseAll(ctx)
	e.slot = Closed{}
	e.pendingDelete = ""
	e.closed = true
}

func (e *ProductEditor) refresh(ctx context.Context) {
	p, err := e.api.GetProduct(ctx, e.productID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"product": e.productID, "error": err}).Warn("failed to refetch product")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(p)
	if ed, ok := e.slot.(*Editing); ok {
		if i := e.colorIndex(ed.Color.Id); i >= 0 {
			ed.Color.Images = append([]models.Image{}, e.colors[i].Images...)
		}
	}
}

func (e *ProductEditor) colorIndex(colorID string) int {
	return slices.IndexFunc(e.colors, func(c models.Color) bool { return c.Id == colorID })
}

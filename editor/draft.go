package editor

import (
	"context"
	"strings"
	"sync"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
	"github.com/princinho/sahoadmin/previews"
	"github.com/sirupsen/logrus"
)

const (
	defaultColorName = "Default"
	defaultHexCode   = "#000000"
)

// ProductDraft is a product being created: core fields, its first color
// and the images for that color.
type ProductDraft struct {
	api   ProductAPI
	store previews.Store
	skus  *SKUGenerator

	mu         sync.Mutex
	fields     Fields
	color      ColorFields
	files      *attachments
	known      map[string]struct{}
	submitting bool
	closed     bool
}

// NewProductDraft starts an empty draft. Existing SKUs are fetched so that
// suggestions avoid them; failing to fetch them only costs that.
func NewProductDraft(ctx context.Context, api ProductAPI, store previews.Store, skus *SKUGenerator) *ProductDraft {
	d := &ProductDraft{
		api:   api,
		store: store,
		skus:  skus,
		fields: Fields{
			IsActive:       true,
			Specifications: []models.Specification{{}},
		},
		color: ColorFields{ColorName: defaultColorName, HexCode: defaultHexCode},
		files: newAttachments(store),
		known: map[string]struct{}{},
	}
	existing, err := api.ListSKUs(ctx)
	if err != nil {
		logrus.WithField("error", err).Warn("failed to fetch existing skus")
	}
	for _, s := range existing {
		d.known[s] = struct{}{}
	}
	return d
}

// DraftView is the JSON shape of a draft.
type DraftView struct {
	Fields      Fields       `json:"fields"`
	Color       ColorFields  `json:"color"`
	Attachments []Attachment `json:"attachments"`
	Submitting  bool         `json:"submitting"`
}

func (d *ProductDraft) View() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DraftView{
		Fields:      d.fields.clone(),
		Color:       d.color,
		Attachments: d.files.list(),
		Submitting:  d.submitting,
	}
}

// Update merges a patch. A title change suggests a new SKU unless the same
// patch sets the SKU explicitly.
func (d *ProductDraft) Update(fields dto.ProductFieldsDTO, color dto.ColorFieldsDTO) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	c := d.color
	if err := c.apply(color); err != nil {
		return err
	}
	d.color = c
	if d.fields.apply(fields) && fields.Sku == nil {
		d.fields.Sku = d.suggestLocked()
	}
	return nil
}

// RegenerateSKU replaces the SKU with a fresh suggestion.
func (d *ProductDraft) RegenerateSKU() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", ErrClosed
	}
	d.fields.Sku = d.suggestLocked()
	return d.fields.Sku, nil
}

func (d *ProductDraft) suggestLocked() string {
	return d.skus.Suggest(d.fields.Title, func(s string) bool {
		_, ok := d.known[s]
		return ok
	})
}

func (d *ProductDraft) AddSpec() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.fields.addSpec()
	return nil
}

func (d *ProductDraft) UpdateSpec(i int, spec dto.SpecificationDTO) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return d.fields.updateSpec(i, spec)
}

func (d *ProductDraft) RemoveSpec(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return d.fields.removeSpec(i)
}

func (d *ProductDraft) Attach(ctx context.Context, fileName, contentType string, data []byte) (Attachment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Attachment{}, ErrClosed
	}
	return d.files.add(ctx, fileName, contentType, data)
}

func (d *ProductDraft) DiscardAttachment(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files.discard(ctx, id)
}

func (d *ProductDraft) OwnsPreview(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files.has(key)
}

// Submit creates the product with its first color. On a duplicate SKU the
// SKU is regenerated, everything else is kept and ErrSKUConflict is
// returned.
func (d *ProductDraft) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.submitting {
		d.mu.Unlock()
		return ErrBusy
	}
	if missing := d.missingLocked(); len(missing) > 0 {
		d.mu.Unlock()
		return &MissingFieldsError{Fields: missing}
	}
	d.submitting = true
	payload := d.createDTOLocked()
	files := d.files.files()
	d.mu.Unlock()

	err := d.api.CreateProduct(ctx, payload, files)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
	switch {
	case err == nil:
		d.files.releaseAll(ctx)
		d.closed = true
		return nil
	case catalog.IsDuplicateSKU(err):
		d.known[payload.Sku] = struct{}{}
		d.fields.Sku = d.suggestLocked()
		logrus.WithFields(logrus.Fields{"sku": payload.Sku, "next": d.fields.Sku}).Info("sku taken, regenerated")
		return ErrSKUConflict
	}
	return err
}

func (d *ProductDraft) missingLocked() []string {
	var missing []string
	if strings.TrimSpace(d.fields.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.fields.Sku) == "" {
		missing = append(missing, "sku")
	}
	if strings.TrimSpace(d.fields.Category) == "" {
		missing = append(missing, "category")
	}
	return missing
}

func (d *ProductDraft) createDTOLocked() dto.CreateProductDTO {
	specs := []models.Specification{}
	for _, s := range d.fields.Specifications {
		if strings.TrimSpace(s.Key) == "" || strings.TrimSpace(s.Value) == "" {
			continue
		}
		specs = append(specs, s)
	}
	name, hex := d.color.ColorName, d.color.HexCode
	if name == "" {
		name = defaultColorName
	}
	if hex == "" {
		hex = defaultHexCode
	}
	return dto.CreateProductDTO{
		Title:          d.fields.Title,
		Description:    d.fields.Description,
		Sku:            d.fields.Sku,
		Category:       d.fields.Category,
		Stock:          d.fields.Stock,
		IsActive:       d.fields.IsActive,
		ColorName:      name,
		HexCode:        hex,
		Specifications: specs,
	}
}

// Close abandons the draft and releases its previews.
func (d *ProductDraft) Close(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files.releaseAll(ctx)
	d.closed = true
}

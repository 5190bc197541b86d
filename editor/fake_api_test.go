package editor

import (
	"context"
	"io"
	"sync"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

// fakeAPI records every call. Set the *Err fields to make a call fail and
// block to hold the product and color writes until it is closed.
type fakeAPI struct {
	mu      sync.Mutex
	product models.Product
	skus    []string
	calls   []string

	createErr error
	updateErr error
	removeErr error
	block     chan struct{}
	entered   chan struct{}

	created      []dto.CreateProductDTO
	createdFiles [][]string
	updated      []dto.UpdateProductDTO
	colorUpdates []colorUpdate
	removed      []string
	deleted      []string
}

type colorUpdate struct {
	colorID  string
	color    dto.ColorDTO
	retained []models.Image
	files    []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		product: models.Product{
			Id:    "p1",
			Title: "Red Shoe",
			Sku:   "SKURED100",
			Category: &models.CategoryRef{
				Id:   "c1",
				Name: "Shoes",
			},
			IsActive:       true,
			Specifications: []models.Specification{{Key: "Size", Value: "42"}},
			Colors: []models.Color{
				{Id: "red", ColorName: "Red", HexCode: "#ff0000", IsDefault: true, Images: []models.Image{
					{Id: "i1", Url: "https://cdn/red-1.png"},
					{Id: "i2", Url: "https://cdn/red-2.png"},
				}},
				{Id: "blue", ColorName: "Blue", HexCode: "#0000ff"},
			},
		},
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func readNames(ctx context.Context, files []catalog.File) []string {
	var names []string
	for _, file := range files {
		rc, err := file.Open(ctx)
		if err != nil {
			names = append(names, "!"+file.Name)
			continue
		}
		_, _ = io.Copy(io.Discard, rc)
		rc.Close()
		names = append(names, file.Name)
	}
	return names
}

func (f *fakeAPI) GetProduct(_ context.Context, id string) (*models.Product, error) {
	f.record("GetProduct " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.product
	p.Colors = append([]models.Color{}, f.product.Colors...)
	return &p, nil
}

func (f *fakeAPI) ListSKUs(context.Context) ([]string, error) {
	f.record("ListSKUs")
	return f.skus, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p dto.CreateProductDTO, images []catalog.File) error {
	f.record("CreateProduct")
	f.wait()
	names := readNames(ctx, images)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	f.createdFiles = append(f.createdFiles, names)
	return f.createErr
}

func (f *fakeAPI) UpdateProduct(_ context.Context, _ string, p dto.UpdateProductDTO) error {
	f.record("UpdateProduct")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, p)
	return f.updateErr
}

func (f *fakeAPI) AddColor(ctx context.Context, _ string, color dto.ColorDTO, images []catalog.File) error {
	f.record("AddColor")
	f.wait()
	names := readNames(ctx, images)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.product.Colors = append(f.product.Colors, models.Color{Id: "new", ColorName: color.ColorName, HexCode: color.HexCode})
	f.colorUpdates = append(f.colorUpdates, colorUpdate{color: color, files: names})
	return nil
}

func (f *fakeAPI) UpdateColor(ctx context.Context, _, colorID string, color dto.ColorDTO, retained []models.Image, images []catalog.File) error {
	f.record("UpdateColor")
	f.wait()
	names := readNames(ctx, images)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colorUpdates = append(f.colorUpdates, colorUpdate{colorID: colorID, color: color, retained: retained, files: names})
	return nil
}

func (f *fakeAPI) DeleteColor(_ context.Context, _, colorID string) error {
	f.record("DeleteColor")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, colorID)
	return nil
}

func (f *fakeAPI) RemoveColorImage(_ context.Context, _, _, imageURL string) error {
	f.record("RemoveColorImage")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, imageURL)
	return nil
}

package editor

import (
	"context"
	"errors"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

// ProductAPI is the part of the catalog client the product forms use.
type ProductAPI interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListSKUs(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, p dto.CreateProductDTO, images []catalog.File) error
	UpdateProduct(ctx context.Context, id string, p dto.UpdateProductDTO) error
	AddColor(ctx context.Context, productID string, color dto.ColorDTO, images []catalog.File) error
	UpdateColor(ctx context.Context, productID, colorID string, color dto.ColorDTO, retained []models.Image, images []catalog.File) error
	DeleteColor(ctx context.Context, productID, colorID string) error
	RemoveColorImage(ctx context.Context, productID, colorID, imageURL string) error
}

var _ ProductAPI = (*catalog.Client)(nil)

var (
	ErrBusy               = errors.New("a submission is already in flight")
	ErrClosed             = errors.New("form is closed")
	ErrNoColorSlot        = errors.New("no color is being added or edited")
	ErrNotEditingColor    = errors.New("persisted images can only be removed while editing a color")
	ErrColorNotFound      = errors.New("color not found")
	ErrImageNotFound      = errors.New("image not found on color")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrSpecIndex          = errors.New("specification index out of range")
	ErrNoPendingDelete    = errors.New("no color deletion awaiting confirmation")
	ErrNotConfirmed       = errors.New("color deletion was not confirmed")
	ErrSKUConflict        = errors.New("sku already exists")
	ErrInvalidHex         = errors.New("hex code must look like #rrggbb")
)

// MissingFieldsError lists required fields left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "please fill in all required fields"
}

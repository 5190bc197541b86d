package dto

import "github.com/princinho/sahoadmin/models"

// CreateProductDTO is sent as multipart fields to POST /products together
// with the images of the first (default) color.
type CreateProductDTO struct {
	Title          string
	Description    string
	Sku            string
	Category       string
	Stock          bool
	IsActive       bool
	ColorName      string
	HexCode        string
	Specifications []models.Specification
}

// UpdateProductDTO replaces the scalar fields and the whole specifications
// list. There is no partial update of specifications.
type UpdateProductDTO struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Sku            string                 `json:"sku"`
	Category       string                 `json:"category"`
	Stock          bool                   `json:"stock"`
	IsActive       bool                   `json:"isActive"`
	Specifications []models.Specification `json:"specifications"`
}

// ProductFieldsDTO patches an in-progress product form; all fields are
// optional pointers.
type ProductFieldsDTO struct {
	Title          *string                 `json:"title"`
	Description    *string                 `json:"description"`
	Sku            *string                 `json:"sku"`
	Category       *string                 `json:"category"`
	Stock          *bool                   `json:"stock"`
	IsActive       *bool                   `json:"isActive"`
	Specifications *[]models.Specification `json:"specifications"`
}

type SpecificationDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

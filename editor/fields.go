package editor

import (
	"regexp"
	"slices"

	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

// Fields are a product's core (scalar) fields plus its specifications.
type Fields struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Sku            string                 `json:"sku"`
	Category       string                 `json:"category"`
	Stock          bool                   `json:"stock"`
	IsActive       bool                   `json:"isActive"`
	Specifications []models.Specification `json:"specifications"`
}

func fieldsOf(p *models.Product) Fields {
	return Fields{
		Title:          p.Title,
		Description:    p.Description,
		Sku:            p.Sku,
		Category:       p.CategoryID(),
		Stock:          p.Stock,
		IsActive:       p.IsActive,
		Specifications: append([]models.Specification{}, p.Specifications...),
	}
}

func (f Fields) clone() Fields {
	f.Specifications = append([]models.Specification{}, f.Specifications...)
	return f
}

// apply merges a patch; it reports whether the title changed.
func (f *Fields) apply(patch dto.ProductFieldsDTO) bool {
	titleChanged := false
	if patch.Title != nil {
		titleChanged = *patch.Title != f.Title
		f.Title = *patch.Title
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Sku != nil {
		f.Sku = *patch.Sku
	}
	if patch.Category != nil {
		f.Category = *patch.Category
	}
	if patch.Stock != nil {
		f.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		f.IsActive = *patch.IsActive
	}
	if patch.Specifications != nil {
		f.Specifications = append([]models.Specification{}, (*patch.Specifications)...)
	}
	return titleChanged
}

func (f *Fields) addSpec() {
	f.Specifications = append(f.Specifications, models.Specification{})
}

func (f *Fields) updateSpec(i int, spec dto.SpecificationDTO) error {
	if i < 0 || i >= len(f.Specifications) {
		return ErrSpecIndex
	}
	f.Specifications[i] = models.Specification{Key: spec.Key, Value: spec.Value}
	return nil
}

func (f *Fields) removeSpec(i int) error {
	if i < 0 || i >= len(f.Specifications) {
		return ErrSpecIndex
	}
	f.Specifications = slices.Delete(f.Specifications, i, i+1)
	return nil
}

func (f Fields) updateDTO() dto.UpdateProductDTO {
	return dto.UpdateProductDTO{
		Title:          f.Title,
		Description:    f.Description,
		Sku:            f.Sku,
		Category:       f.Category,
		Stock:          f.Stock,
		IsActive:       f.IsActive,
		Specifications: append([]models.Specification{}, f.Specifications...),
	}
}

// ColorFields is the editable metadata of a color.
type ColorFields struct {
	ColorName string `json:"colorName"`
	HexCode   string `json:"hexCode"`
}

var hexCode = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (c *ColorFields) apply(patch dto.ColorFieldsDTO) error {
	if patch.HexCode != nil && *patch.HexCode != "" && !hexCode.MatchString(*patch.HexCode) {
		return ErrInvalidHex
	}
	if patch.ColorName != nil {
		c.ColorName = *patch.ColorName
	}
	if patch.HexCode != nil {
		c.HexCode = *patch.HexCode
	}
	return nil
}

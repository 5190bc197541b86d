package models

import "encoding/json"

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Image struct {
	Id  string `json:"_id,omitempty"`
	Url string `json:"url"`
}

type Color struct {
	Id        string  `json:"_id"`
	ColorName string  `json:"colorName"`
	HexCode   string  `json:"hexCode"`
	IsDefault bool    `json:"isDefault"`
	Images    []Image `json:"images"`
}

// CategoryRef is the category a product points at. The catalog API sends
// either the populated category object or just its id.
type CategoryRef struct {
	Id   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.Id)
	}
	type plain CategoryRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = CategoryRef(p)
	return nil
}

type Product struct {
	Id             string          `json:"_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Sku            string          `json:"sku"`
	Category       *CategoryRef    `json:"category"`
	Stock          bool            `json:"stock"`
	IsActive       bool            `json:"isActive"`
	Specifications []Specification `json:"specifications"`
	Colors         []Color         `json:"colors"`
}

func (p Product) CategoryID() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Id
}

func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// DefaultColors counts colors flagged as default. The catalog expects
// exactly one, but nothing on this side enforces it.
func (p Product) DefaultColors() int {
	n := 0
	for _, c := range p.Colors {
		if c.IsDefault {
			n++
		}
	}
	return n
}

func (c Color) HasImage(url string) bool {
	for _, img := range c.Images {
		if img.Url == url {
			return true
		}
	}
	return false
}

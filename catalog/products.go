package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

// ListProducts returns the whole product collection; the API has no
// server-side paging.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var env envelope[[]models.Product]
	if err := c.getJSON(ctx, "/products", &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.Product{}, nil
	}
	return env.Data, nil
}

// ListSKUs returns every SKU already in use.
func (c *Client) ListSKUs(ctx context.Context) ([]string, error) {
	var body struct {
		Skus []string `json:"skus"`
	}
	if err := c.getJSON(ctx, "/products/skus", &body); err != nil {
		return nil, err
	}
	return body.Skus, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var env envelope[*models.Product]
	if err := c.getJSON(ctx, "/products/"+escape(id), &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "product not found"}
	}
	return env.Data, nil
}

// CreateProduct posts the core fields, the first color and its images in
// one multipart request.
func (c *Client) CreateProduct(ctx context.Context, p dto.CreateProductDTO, images []File) error {
	specs := p.Specifications
	if specs == nil {
		specs = []models.Specification{}
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return &RequestError{Op: "POST /products", Err: err}
	}

	fields := []field{
		{"title", p.Title},
		{"description", p.Description},
		{"sku", p.Sku},
		{"category", p.Category},
		{"stock", strconv.FormatBool(p.Stock)},
		{"isActive", strconv.FormatBool(p.IsActive)},
		{"isDefault", "true"},
		{"colorName", p.ColorName},
		{"hexCode", p.HexCode},
		{"specifications", string(specsJSON)},
	}
	return c.sendMultipart(ctx, http.MethodPost, "/products", fields, images, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p dto.UpdateProductDTO) error {
	if p.Specifications == nil {
		p.Specifications = []models.Specification{}
	}
	return c.sendJSON(ctx, http.MethodPut, "/products/"+escape(id), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+escape(id), nil, "", nil)
}

func (c *Client) AddColor(ctx context.Context, productID string, color dto.ColorDTO, images []File) error {
	fields := []field{
		{"colorName", color.ColorName},
		{"hexCode", color.HexCode},
	}
	return c.sendMultipart(ctx, http.MethodPost, "/products/"+escape(productID)+"/colors", fields, images, nil)
}

// UpdateColor sends the color metadata, one existingImages field per
// retained persisted image (the whole stored image, id included), and the
// new images.
func (c *Client) UpdateColor(ctx context.Context, productID, colorID string, color dto.ColorDTO, retained []models.Image, images []File) error {
	op := "PUT /products/" + productID + "/colors/" + colorID
	fields := []field{
		{"colorName", color.ColorName},
		{"hexCode", color.HexCode},
	}
	for _, img := range retained {
		raw, err := json.Marshal(img)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		fields = append(fields, field{"existingImages", string(raw)})
	}
	path := "/products/" + escape(productID) + "/colors/" + escape(colorID)
	return c.sendMultipart(ctx, http.MethodPut, path, fields, images, nil)
}

func (c *Client) DeleteColor(ctx context.Context, productID, colorID string) error {
	path := "/products/" + escape(productID) + "/colors/" + escape(colorID)
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// RemoveColorImage deletes one persisted image; the URL travels in the
// request body.
func (c *Client) RemoveColorImage(ctx context.Context, productID, colorID, imageURL string) error {
	path := "/products/" + escape(productID) + "/colors/" + escape(colorID) + "/image"
	return c.sendJSON(ctx, http.MethodDelete, path, dto.RemoveImageDTO{ImageUrl: imageURL}, nil)
}

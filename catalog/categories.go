package catalog

import (
	"context"
	"net/http"

	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var env envelope[[]models.Category]
	if err := c.getJSON(ctx, "/categories", &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.Category{}, nil
	}
	return env.Data, nil
}

func (c *Client) CreateCategory(ctx context.Context, body dto.CategoryDTO) error {
	return c.sendJSON(ctx, http.MethodPost, "/categories", body, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, body dto.CategoryDTO) error {
	return c.sendJSON(ctx, http.MethodPut, "/categories/"+escape(id), body, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+escape(id), nil, "", nil)
}

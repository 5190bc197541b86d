package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
)

// categoriesBody refetches the categories after a change. A failed refetch
// only costs the list.
func (a *App) categoriesBody(c *gin.Context) gin.H {
	categories, err := a.api(c).ListCategories(c.Request.Context())
	if err != nil {
		a.Notify.Error(sessionID(c), err, "Failed to fetch categories. Please try again.")
		categories = []models.Category{}
	}
	return gin.H{"categories": categories}
}

// GET /api/categories
func (a *App) GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := a.api(c).ListCategories(c.Request.Context())
		if err != nil {
			a.fail(c, err, "Failed to fetch categories. Please try again.", gin.H{"categories": []models.Category{}})
			return
		}
		a.ok(c, http.StatusOK, "", gin.H{"categories": categories})
	}
}

func bindCategory(c *gin.Context) (dto.CategoryDTO, error) {
	var body dto.CategoryDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		return body, badInput("category name is required")
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Description = strings.TrimSpace(body.Description)
	if body.Name == "" {
		return body, badInput("category name is required")
	}
	return body, nil
}

// POST /api/categories
func (a *App) CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := bindCategory(c)
		if err != nil {
			a.fail(c, err, "", nil)
			return
		}
		if err := a.api(c).CreateCategory(c.Request.Context(), body); err != nil {
			a.fail(c, err, "Failed to add category.", nil)
			return
		}
		a.ok(c, http.StatusCreated, "Category added successfully!", a.categoriesBody(c))
	}
}

// PUT /api/categories/:id
func (a *App) UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := bindCategory(c)
		if err != nil {
			a.fail(c, err, "", nil)
			return
		}
		if err := a.api(c).UpdateCategory(c.Request.Context(), c.Param("id"), body); err != nil {
			a.fail(c, err, "Failed to update category.", nil)
			return
		}
		a.ok(c, http.StatusOK, "Category updated successfully!", a.categoriesBody(c))
	}
}

// DELETE /api/categories/:id   body: {"confirm": true}
func (a *App) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ConfirmDTO
		if err := bindOptionalJSON(c, &body); err != nil {
			a.fail(c, badInput("invalid request body"), "", nil)
			return
		}
		if !body.Confirm {
			a.ok(c, http.StatusOK, "", gin.H{"deleted": false})
			return
		}
		if err := a.api(c).DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			a.fail(c, err, "Failed to delete category.", gin.H{"deleted": false})
			return
		}
		resp := a.categoriesBody(c)
		resp["deleted"] = true
		a.ok(c, http.StatusOK, "Category deleted successfully!", resp)
	}
}

// GET /category-management
func (a *App) CategoryManagementPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := a.categoriesBody(c)
		resp["page"] = "category-management"
		a.ok(c, http.StatusOK, "", resp)
	}
}

package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/listing"
	"github.com/princinho/sahoadmin/middleware"
	"github.com/princinho/sahoadmin/models"
	"github.com/princinho/sahoadmin/notify"
	"github.com/princinho/sahoadmin/utils"
	"github.com/princinho/sahoadmin/workspace"
)

// listQuery applies q, limit and page from the query string to the
// session's list state and derives the visible rows from products. A new
// filter or page size lands on page 1 whatever page the request carries.
func listQuery(c *gin.Context, e *workspace.Entry, products []models.Product) (gin.H, error) {
	state, err := e.UpdateList(func(s *listing.State) error {
		reset := false
		if q, ok := c.GetQuery("q"); ok {
			reset = s.SetFilter(strings.TrimSpace(q))
		}
		if limit, ok := c.GetQuery("limit"); ok {
			changed, err := s.SetPageSize(utils.ParseIntDefault(limit, 0))
			if err != nil {
				return err
			}
			reset = reset || changed
		}
		view := listing.Derive(products, s.Filter, s.Page, s.PageSize)
		if page, ok := c.GetQuery("page"); ok && !reset {
			s.GoTo(utils.ParseIntDefault(page, 0), view.TotalPages)
		}
		s.Clamp(view.TotalPages)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listBody(state, products), nil
}

func listBody(s listing.State, products []models.Product) gin.H {
	view := listing.Derive(products, s.Filter, s.Page, s.PageSize)
	return gin.H{
		"items":      view.Items,
		"total":      view.Total,
		"totalPages": view.TotalPages,
		"page":       view.Page,
		"pageSize":   view.PageSize,
		"pageSizes":  listing.PageSizes,
		"pages":      listing.PageWindow(view.Page, view.TotalPages),
		"filter":     s.Filter,
		"summary":    view.Summary(s.Filter),
	}
}

// GET /api/products?q=&limit=&page=
func (a *App) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		e := a.entry(c)
		products, err := a.api(c).ListProducts(c.Request.Context())
		if err != nil {
			a.fail(c, err, "Failed to load products", listBody(e.List(), nil))
			return
		}
		body, err := listQuery(c, e, products)
		if err != nil {
			a.fail(c, badInput(err.Error()), "", listBody(e.List(), products))
			return
		}
		a.ok(c, http.StatusOK, "", body)
	}
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, out any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// DELETE /api/products/:id   body: {"confirm": true}
func (a *App) DeleteProduct() gin.HandlerFunc {
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

		ctx := c.Request.Context()
		id := c.Param("id")
		api := a.api(c)
		e := a.entry(c)
		if err := api.DeleteProduct(ctx, id); err != nil {
			a.fail(c, err, "Failed to delete product", gin.H{"deleted": false})
			return
		}
		if ed := e.Editor(); ed != nil && ed.ProductID() == id {
			e.CloseEditor(ctx, ed)
		}
		a.Notify.Success(sessionID(c), "Product deleted successfully")

		products, err := api.ListProducts(ctx)
		if err != nil {
			a.fail(c, err, "Failed to load products", gin.H{"deleted": true})
			return
		}
		list, _ := e.UpdateList(func(s *listing.State) error {
			s.Clamp(listing.Derive(products, s.Filter, s.Page, s.PageSize).TotalPages)
			return nil
		})
		resp := listBody(list, products)
		resp["deleted"] = true
		a.ok(c, http.StatusOK, "", resp)
	}
}

// GET /product-management
func (a *App) ProductManagementPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		api := a.api(c)
		e := a.entry(c)
		body := gin.H{"page": "product-management"}
		if s, ok := middleware.CurrentSession(c); ok {
			body["user"] = s.UserName
		}
		categories, err := api.ListCategories(ctx)
		if err != nil {
			a.Notify.Push(sessionID(c), notify.Error, userMessage(err, "Failed to load categories"))
			categories = []models.Category{}
		}
		body["categories"] = categories

		products, err := api.ListProducts(ctx)
		if err != nil {
			a.fail(c, err, "Failed to load products", body)
			return
		}
		list, err := listQuery(c, e, products)
		if err != nil {
			a.fail(c, badInput(err.Error()), "", body)
			return
		}
		body["list"] = list
		if d := e.Draft(); d != nil {
			body["draft"] = d.View()
		}
		if ed := e.Editor(); ed != nil {
			body["editor"] = ed.View()
		}
		a.ok(c, http.StatusOK, "", body)
	}
}

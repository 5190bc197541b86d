package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/editor"
)

type openEditorDTO struct {
	ProductID string `json:"productId" binding:"required"`
}

func (a *App) withEditor(fn func(c *gin.Context, ed *editor.ProductEditor)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ed := a.entry(c).Editor()
		if ed == nil {
			noForm(c, "product editor")
			return
		}
		fn(c, ed)
	}
}

func (a *App) editorResult(c *gin.Context, ed *editor.ProductEditor, err error, fallback, success string) {
	if err != nil {
		a.fail(c, err, fallback, gin.H{"editor": ed.View()})
		return
	}
	a.ok(c, http.StatusOK, success, gin.H{"editor": ed.View()})
}

// POST /api/product-editor   body: {"productId": "..."}
func (a *App) OpenEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body openEditorDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.fail(c, badInput("productId is required"), "", nil)
			return
		}
		ctx := c.Request.Context()
		ed, err := editor.OpenProductEditor(ctx, a.api(c), a.Previews, body.ProductID)
		if err != nil {
			if catalog.IsNotFound(err) {
				a.fail(c, err, "Product not found", nil)
				return
			}
			a.fail(c, err, "Failed to load product data", nil)
			return
		}
		a.entry(c).SetEditor(ctx, ed)
		a.ok(c, http.StatusCreated, "", gin.H{"editor": ed.View()})
	}
}

// GET /api/product-editor
func (a *App) GetEditor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		a.ok(c, http.StatusOK, "", gin.H{"editor": ed.View()})
	})
}

// PATCH /api/product-editor
func (a *App) UpdateEditorFields() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		var body dto.ProductFieldsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.editorResult(c, ed, badInput("invalid request body"), "", "")
			return
		}
		a.editorResult(c, ed, ed.SetFields(body), "", "")
	})
}

// POST /api/product-editor/specs
func (a *App) AddEditorSpec() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		a.editorResult(c, ed, ed.AddSpec(), "", "")
	})
}

// PUT /api/product-editor/specs/:index
func (a *App) UpdateEditorSpec() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		i, err := specIndex(c)
		if err != nil {
			a.editorResult(c, ed, err, "", "")
			return
		}
		var body dto.SpecificationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.editorResult(c, ed, badInput("invalid request body"), "", "")
			return
		}
		a.editorResult(c, ed, ed.UpdateSpec(i, body), "", "")
	})
}

// DELETE /api/product-editor/specs/:index
func (a *App) RemoveEditorSpec() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		i, err := specIndex(c)
		if err == nil {
			err = ed.RemoveSpec(i)
		}
		a.editorResult(c, ed, err, "", "")
	})
}

// POST /api/product-editor/submit
//
// Success closes the editor, like the dashboard's modal.
func (a *App) SubmitEditor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		ctx := c.Request.Context()
		if err := ed.SubmitCore(ctx); err != nil {
			a.editorResult(c, ed, err, "Failed to update product details", "")
			return
		}
		a.entry(c).CloseEditor(ctx, ed)
		a.ok(c, http.StatusOK, "Product details updated successfully!", gin.H{"closed": true})
	})
}

// DELETE /api/product-editor
func (a *App) CloseEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.entry(c).CloseEditor(c.Request.Context(), nil)
		a.ok(c, http.StatusOK, "", gin.H{"closed": true})
	}
}

// POST /api/product-editor/color
func (a *App) StartAddColor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		a.editorResult(c, ed, ed.StartAddColor(c.Request.Context()), "", "")
	})
}

// POST /api/product-editor/colors/:colorId/edit
func (a *App) StartEditColor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		a.editorResult(c, ed, ed.StartEditColor(c.Request.Context(), c.Param("colorId")), "", "")
	})
}

// PATCH /api/product-editor/color
func (a *App) UpdateColorFields() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		var body dto.ColorFieldsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.editorResult(c, ed, badInput("invalid request body"), "", "")
			return
		}
		a.editorResult(c, ed, ed.SetColorFields(body), "", "")
	})
}

// DELETE /api/product-editor/color
func (a *App) CloseColor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		ed.CloseColor(c.Request.Context())
		a.editorResult(c, ed, nil, "", "")
	})
}

// POST /api/product-editor/color/attachments   multipart: image (repeatable)
func (a *App) AttachToColor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		uploads, err := a.readUploads(c)
		if err != nil {
			a.editorResult(c, ed, err, "", "")
			return
		}
		_, err = stage(c.Request.Context(), ed.Attach, uploads)
		a.editorResult(c, ed, err, "Failed to attach image", "")
	})
}

// DELETE /api/product-editor/color/attachments/:attachmentId
func (a *App) DiscardColorAttachment() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		err := ed.DiscardAttachment(c.Request.Context(), c.Param("attachmentId"))
		a.editorResult(c, ed, err, "", "")
	})
}

// DELETE /api/product-editor/color/images   body: {"imageUrl": "..."}
func (a *App) RemoveColorImage() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		var body dto.RemoveImageDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.editorResult(c, ed, badInput("imageUrl is required"), "", "")
			return
		}
		err := ed.RemovePersistedImage(c.Request.Context(), body.ImageUrl)
		a.editorResult(c, ed, err, "Failed to remove image", "Image removed successfully!")
	})
}

// POST /api/product-editor/color/submit
func (a *App) SubmitColor() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		mode := ed.View().Color.Mode
		fallback, success := "Failed to update color", "Color updated successfully!"
		if mode == editor.SlotAdding {
			fallback, success = "Failed to add color", "Color added successfully!"
		}
		a.editorResult(c, ed, ed.SubmitColor(c.Request.Context()), fallback, success)
	})
}

// POST /api/product-editor/colors/:colorId/delete
func (a *App) RequestColorDelete() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		a.editorResult(c, ed, ed.RequestColorDelete(c.Param("colorId")), "", "")
	})
}

// POST /api/product-editor/color-delete   body: {"confirm": true|false}
//
// confirm=false cancels without touching the catalog.
func (a *App) ConfirmColorDelete() gin.HandlerFunc {
	return a.withEditor(func(c *gin.Context, ed *editor.ProductEditor) {
		var body dto.ConfirmDTO
		if err := bindOptionalJSON(c, &body); err != nil {
			a.editorResult(c, ed, badInput("invalid request body"), "", "")
			return
		}
		err := ed.ConfirmColorDelete(c.Request.Context(), body.Confirm)
		if errors.Is(err, editor.ErrNotConfirmed) {
			a.ok(c, http.StatusOK, "", gin.H{"editor": ed.View(), "deleted": false})
			return
		}
		a.editorResult(c, ed, err, "Failed to delete color", "Color deleted successfully!")
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/editor"
)

type draftPatch struct {
	Fields dto.ProductFieldsDTO `json:"fields"`
	Color  dto.ColorFieldsDTO   `json:"color"`
}

// withDraft runs fn against the session's open draft.
func (a *App) withDraft(fn func(c *gin.Context, d *editor.ProductDraft)) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := a.entry(c).Draft()
		if d == nil {
			noForm(c, "product draft")
			return
		}
		fn(c, d)
	}
}

func (a *App) draftResult(c *gin.Context, d *editor.ProductDraft, err error, fallback string) {
	if err != nil {
		a.fail(c, err, fallback, gin.H{"draft": d.View()})
		return
	}
	a.ok(c, http.StatusOK, "", gin.H{"draft": d.View()})
}

// POST /api/product-draft
func (a *App) OpenDraft() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		d := editor.NewProductDraft(ctx, a.api(c), a.Previews, a.SKUs)
		a.entry(c).SetDraft(ctx, d)
		a.ok(c, http.StatusCreated, "", gin.H{"draft": d.View()})
	}
}

// GET /api/product-draft
func (a *App) GetDraft() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		a.ok(c, http.StatusOK, "", gin.H{"draft": d.View()})
	})
}

// PATCH /api/product-draft   body: {"fields": {...}, "color": {...}}
func (a *App) UpdateDraft() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		var body draftPatch
		if err := c.ShouldBindJSON(&body); err != nil {
			a.fail(c, badInput("invalid request body"), "", gin.H{"draft": d.View()})
			return
		}
		a.draftResult(c, d, d.Update(body.Fields, body.Color), "")
	})
}

// POST /api/product-draft/sku
func (a *App) RegenerateDraftSKU() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		_, err := d.RegenerateSKU()
		a.draftResult(c, d, err, "")
	})
}

// POST /api/product-draft/specs
func (a *App) AddDraftSpec() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		a.draftResult(c, d, d.AddSpec(), "")
	})
}

// PUT /api/product-draft/specs/:index
func (a *App) UpdateDraftSpec() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		i, err := specIndex(c)
		if err != nil {
			a.draftResult(c, d, err, "")
			return
		}
		var body dto.SpecificationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.draftResult(c, d, badInput("invalid request body"), "")
			return
		}
		a.draftResult(c, d, d.UpdateSpec(i, body), "")
	})
}

// DELETE /api/product-draft/specs/:index
func (a *App) RemoveDraftSpec() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		i, err := specIndex(c)
		if err == nil {
			err = d.RemoveSpec(i)
		}
		a.draftResult(c, d, err, "")
	})
}

// POST /api/product-draft/attachments   multipart: image (repeatable)
func (a *App) AttachToDraft() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		uploads, err := a.readUploads(c)
		if err != nil {
			a.draftResult(c, d, err, "")
			return
		}
		_, err = stage(c.Request.Context(), d.Attach, uploads)
		a.draftResult(c, d, err, "Failed to attach image")
	})
}

// DELETE /api/product-draft/attachments/:attachmentId
func (a *App) DiscardDraftAttachment() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		a.draftResult(c, d, d.DiscardAttachment(c.Request.Context(), c.Param("attachmentId")), "")
	})
}

// POST /api/product-draft/submit
//
// Success closes the draft and answers with the refreshed product list. A
// taken SKU answers 409 with the draft carrying a new suggestion.
func (a *App) SubmitDraft() gin.HandlerFunc {
	return a.withDraft(func(c *gin.Context, d *editor.ProductDraft) {
		ctx := c.Request.Context()
		if err := d.Submit(ctx); err != nil {
			a.fail(c, err, "Failed to add product", gin.H{"draft": d.View()})
			return
		}
		e := a.entry(c)
		e.CloseDraft(ctx, d)
		a.Notify.Success(sessionID(c), "Product added successfully!")

		products, err := a.api(c).ListProducts(ctx)
		if err != nil {
			a.fail(c, err, "Failed to load products", gin.H{"created": true})
			return
		}
		resp := listBody(e.List(), products)
		resp["created"] = true
		a.ok(c, http.StatusCreated, "", resp)
	})
}

// DELETE /api/product-draft
func (a *App) CloseDraft() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.entry(c).CloseDraft(c.Request.Context(), nil)
		a.ok(c, http.StatusOK, "", gin.H{"closed": true})
	}
}

package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/middleware"
)

func (a *App) Register(r *gin.Engine) {
	r.GET("/ping", Ping())
	r.GET("/login", a.LoginPage())
	r.POST("/login", a.Login())
	r.POST("/logout", a.Logout())

	guarded := r.Group("/")
	guarded.Use(middleware.RequireSession(a.Sessions))
	{
		guarded.GET("/product-management", a.ProductManagementPage())
		guarded.GET("/category-management", a.CategoryManagementPage())
		guarded.GET("/previews/:key", a.GetPreview())
	}

	api := r.Group("/api")
	api.Use(middleware.RequireSession(a.Sessions))
	{
		api.GET("/notifications", a.GetNotifications())

		api.GET("/products", a.GetProducts())
		api.DELETE("/products/:id", a.DeleteProduct())

		api.GET("/categories", a.GetCategories())
		api.POST("/categories", a.CreateCategory())
		api.PUT("/categories/:id", a.UpdateCategory())
		api.DELETE("/categories/:id", a.DeleteCategory())

		api.POST("/product-draft", a.OpenDraft())
		api.GET("/product-draft", a.GetDraft())
		api.PATCH("/product-draft", a.UpdateDraft())
		api.DELETE("/product-draft", a.CloseDraft())
		api.POST("/product-draft/sku", a.RegenerateDraftSKU())
		api.POST("/product-draft/specs", a.AddDraftSpec())
		api.PUT("/product-draft/specs/:index", a.UpdateDraftSpec())
		api.DELETE("/product-draft/specs/:index", a.RemoveDraftSpec())
		api.POST("/product-draft/attachments", a.AttachToDraft())
		api.DELETE("/product-draft/attachments/:attachmentId", a.DiscardDraftAttachment())
		api.POST("/product-draft/submit", a.SubmitDraft())

		api.POST("/product-editor", a.OpenEditor())
		api.GET("/product-editor", a.GetEditor())
		api.PATCH("/product-editor", a.UpdateEditorFields())
		api.DELETE("/product-editor", a.CloseEditor())
		api.POST("/product-editor/specs", a.AddEditorSpec())
		api.PUT("/product-editor/specs/:index", a.UpdateEditorSpec())
		api.DELETE("/product-editor/specs/:index", a.RemoveEditorSpec())
		api.POST("/product-editor/submit", a.SubmitEditor())
		api.POST("/product-editor/color", a.StartAddColor())
		api.PATCH("/product-editor/color", a.UpdateColorFields())
		api.DELETE("/product-editor/color", a.CloseColor())
		api.POST("/product-editor/color/attachments", a.AttachToColor())
		api.DELETE("/product-editor/color/attachments/:attachmentId", a.DiscardColorAttachment())
		api.DELETE("/product-editor/color/images", a.RemoveColorImage())
		api.POST("/product-editor/color/submit", a.SubmitColor())
		api.POST("/product-editor/colors/:colorId/edit", a.StartEditColor())
		api.POST("/product-editor/colors/:colorId/delete", a.RequestColorDelete())
		api.POST("/product-editor/color-delete", a.ConfirmColorDelete())
	}
}

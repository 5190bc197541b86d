package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/previews"
	"github.com/sirupsen/logrus"
)

// GET /previews/:key
//
// Only the session that staged an attachment may see its preview.
func (a *App) GetPreview() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if !previews.ValidKey(key) || !a.entry(c).OwnsPreview(key) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preview not found"})
			return
		}
		rc, contentType, err := a.Previews.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, previews.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "preview not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"preview": key, "error": err}).Error("failed to open preview")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open preview"})
			return
		}
		defer rc.Close()

		c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
			"Cache-Control": "private, no-store",
		})
	}
}

// GET /api/notifications
func (a *App) GetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"notifications": a.Notify.Drain(sessionID(c))})
	}
}

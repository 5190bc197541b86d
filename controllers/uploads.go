package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/editor"
)

type upload struct {
	name        string
	contentType string
	data        []byte
}

// readUploads validates every file in the "image" field before any of
// them is staged.
func (a *App) readUploads(c *gin.Context) ([]upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, badInput("invalid multipart form")
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, badInput("no image provided")
	}
	out := make([]upload, 0, len(files))
	for _, fh := range files {
		data, contentType, err := a.Images.ReadFile(fh)
		if err != nil {
			return nil, badInput(fh.Filename + ": " + err.Error())
		}
		out = append(out, upload{name: fh.Filename, contentType: contentType, data: data})
	}
	return out, nil
}

type attacher func(ctx context.Context, fileName, contentType string, data []byte) (editor.Attachment, error)

func stage(ctx context.Context, attach attacher, uploads []upload) ([]editor.Attachment, error) {
	staged := make([]editor.Attachment, 0, len(uploads))
	for _, u := range uploads {
		att, err := attach(ctx, u.name, u.contentType, u.data)
		if err != nil {
			return staged, err
		}
		staged = append(staged, att)
	}
	return staged, nil
}

func specIndex(c *gin.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, editor.ErrSpecIndex
	}
	return i, nil
}

func noForm(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": "no " + what + " is open"})
}

package controllers

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/editor"
	"github.com/princinho/sahoadmin/middleware"
	"github.com/princinho/sahoadmin/notify"
	"github.com/princinho/sahoadmin/previews"
	"github.com/princinho/sahoadmin/sessions"
	"github.com/princinho/sahoadmin/utils"
	"github.com/princinho/sahoadmin/workspace"
)

type App struct {
	Catalog      *catalog.Client
	Sessions     *sessions.Manager
	Previews     previews.Store
	Workspace    *workspace.Workspace
	Notify       *notify.Center
	SKUs         *editor.SKUGenerator
	Images       *utils.FileValidator
	CookieSecure bool
}

// api returns the catalog client bound to the caller's token.
func (a *App) api(c *gin.Context) *catalog.Client {
	if s, ok := middleware.CurrentSession(c); ok {
		return a.Catalog.WithToken(s.Token)
	}
	return a.Catalog
}

func sessionID(c *gin.Context) string {
	if s, ok := middleware.CurrentSession(c); ok {
		return s.ID
	}
	return ""
}

func (a *App) entry(c *gin.Context) *workspace.Entry {
	return a.Workspace.Get(sessionID(c))
}

// ok answers with body plus any queued notifications. A non-empty message
// is queued as a success toast first.
func (a *App) ok(c *gin.Context, status int, message string, body gin.H) {
	sid := sessionID(c)
	if message != "" {
		a.Notify.Success(sid, message)
	}
	if body == nil {
		body = gin.H{}
	}
	body["notifications"] = a.Notify.Drain(sid)
	c.JSON(status, body)
}

// fail queues an error toast and answers with it. Catalog failures are
// described with fallback; local form errors use their own text.
//
// A submit repeated while one is in flight changes nothing: it answers 202
// with the current state and no toast.
func (a *App) fail(c *gin.Context, err error, fallback string, body gin.H) {
	if errors.Is(err, editor.ErrBusy) {
		if body == nil {
			body = gin.H{}
		}
		body["submitting"] = true
		a.ok(c, http.StatusAccepted, "", body)
		return
	}
	sid := sessionID(c)
	msg := userMessage(err, fallback)
	a.Notify.Push(sid, notify.Error, msg)
	if body == nil {
		body = gin.H{}
	}
	body["error"] = msg
	body["notifications"] = a.Notify.Drain(sid)
	c.JSON(statusFor(err), body)
}

func userMessage(err error, fallback string) string {
	var missing *editor.MissingFieldsError
	if errors.As(err, &missing) {
		return "Please fill in all required fields"
	}
	if errors.Is(err, editor.ErrSKUConflict) {
		return "SKU already exists. Generating a new one..."
	}
	if isFormError(err) {
		return capitalize(err.Error())
	}
	var inputErr *inputError
	if errors.As(err, &inputErr) {
		return capitalize(inputErr.msg)
	}
	return notify.Describe(err, fallback)
}

var formErrors = []error{
	editor.ErrClosed, editor.ErrNoColorSlot, editor.ErrNotEditingColor,
	editor.ErrColorNotFound, editor.ErrImageNotFound, editor.ErrAttachmentNotFound,
	editor.ErrSpecIndex, editor.ErrNoPendingDelete, editor.ErrNotConfirmed,
	editor.ErrSKUConflict, editor.ErrInvalidHex,
}

func isFormError(err error) bool {
	for _, target := range formErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// inputError is a request the dashboard refused before calling the
// catalog (bad JSON, bad upload).
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func badInput(msg string) error { return &inputError{msg: msg} }

func statusFor(err error) int {
	var (
		ae      *catalog.APIError
		te      *catalog.TransportError
		missing *editor.MissingFieldsError
		in      *inputError
	)
	switch {
	case errors.As(err, &ae):
		if ae.Status >= 400 && ae.Status < 500 {
			return ae.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &te):
		return http.StatusBadGateway
	case errors.As(err, &missing), errors.As(err, &in),
		errors.Is(err, editor.ErrSpecIndex), errors.Is(err, editor.ErrInvalidHex):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrColorNotFound), errors.Is(err, editor.ErrImageNotFound),
		errors.Is(err, editor.ErrAttachmentNotFound), errors.Is(err, previews.ErrNotFound):
		return http.StatusNotFound
	case isFormError(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Ping answers the health check.
func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	}
}

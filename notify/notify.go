package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/sahoadmin/catalog"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Loading Kind = "loading"
)

const ConnectivityMessage = "No response from server. Check your network connection."

// maxQueued bounds each session's queue; the oldest toasts go first.
const maxQueued = 20

type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center queues toasts per session until the dashboard drains them.
type Center struct {
	mu     sync.Mutex
	queues map[string][]Toast
}

func NewCenter() *Center {
	return &Center{queues: map[string][]Toast{}}
}

func (c *Center) Push(sessionID string, kind Kind, message string) Toast {
	t := Toast{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: time.Now()}
	c.mu.Lock()
	defer c.mu.Unlock()
	q := append(c.queues[sessionID], t)
	if len(q) > maxQueued {
		q = q[len(q)-maxQueued:]
	}
	c.queues[sessionID] = q
	return t
}

func (c *Center) Success(sessionID, message string) Toast {
	return c.Push(sessionID, Success, message)
}

// Error queues Describe(err, fallback).
func (c *Center) Error(sessionID string, err error, fallback string) Toast {
	return c.Push(sessionID, Error, Describe(err, fallback))
}

// Drain returns and clears the session's queue.
func (c *Center) Drain(sessionID string) []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.queues[sessionID]
	delete(c.queues, sessionID)
	if q == nil {
		return []Toast{}
	}
	return q
}

func (c *Center) Forget(sessionID string) {
	c.mu.Lock()
	delete(c.queues, sessionID)
	c.mu.Unlock()
}

// Describe turns a failed call into the text shown to the user:
// the server's own message, a connectivity hint when nothing came back,
// or a generic error when the request never left.
func Describe(err error, fallback string) string {
	var ae *catalog.APIError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return fallback
	}
	var te *catalog.TransportError
	if errors.As(err, &te) {
		return ConnectivityMessage
	}
	var re *catalog.RequestError
	if errors.As(err, &re) {
		return "Error: " + re.Err.Error()
	}
	return "Error: " + err.Error()
}

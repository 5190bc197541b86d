package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/princinho/sahoadmin/editor"
	"github.com/princinho/sahoadmin/listing"
	"github.com/sirupsen/logrus"
)

// Entry is what one session has open: its product list inputs, at most
// one creation draft and at most one product editor.
type Entry struct {
	mu      sync.Mutex
	list    listing.State
	draft   *editor.ProductDraft
	editor  *editor.ProductEditor
	touched time.Time
}

func (e *Entry) List() listing.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.list
}

// UpdateList runs fn on the list state and stores the result.
func (e *Entry) UpdateList(fn func(*listing.State) error) (listing.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.list
	if err := fn(&s); err != nil {
		return e.list, err
	}
	e.list = s
	return s, nil
}

func (e *Entry) Draft() *editor.ProductDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetDraft replaces the open draft, closing the previous one.
func (e *Entry) SetDraft(ctx context.Context, d *editor.ProductDraft) {
	e.mu.Lock()
	prev := e.draft
	e.draft = d
	e.mu.Unlock()
	if prev != nil && prev != d {
		prev.Close(ctx)
	}
}

// CloseDraft closes the draft if it is still d (nil closes whatever is
// open).
func (e *Entry) CloseDraft(ctx context.Context, d *editor.ProductDraft) {
	e.mu.Lock()
	cur := e.draft
	if d == nil || cur == d {
		e.draft = nil
	}
	e.mu.Unlock()
	if cur != nil && (d == nil || cur == d) {
		cur.Close(ctx)
	}
}

func (e *Entry) Editor() *editor.ProductEditor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor
}

// SetEditor replaces the open editor, closing the previous one.
func (e *Entry) SetEditor(ctx context.Context, ed *editor.ProductEditor) {
	e.mu.Lock()
	prev := e.editor
	e.editor = ed
	e.mu.Unlock()
	if prev != nil && prev != ed {
		prev.Close(ctx)
	}
}

// CloseEditor closes the editor if it is still ed (nil closes whatever is
// open).
func (e *Entry) CloseEditor(ctx context.Context, ed *editor.ProductEditor) {
	e.mu.Lock()
	cur := e.editor
	if ed == nil || cur == ed {
		e.editor = nil
	}
	e.mu.Unlock()
	if cur != nil && (ed == nil || cur == ed) {
		cur.Close(ctx)
	}
}

// OwnsPreview reports whether the draft or the editor holds key.
func (e *Entry) OwnsPreview(key string) bool {
	e.mu.Lock()
	d, ed := e.draft, e.editor
	e.mu.Unlock()
	return (d != nil && d.OwnsPreview(key)) || (ed != nil && ed.OwnsPreview(key))
}

func (e *Entry) closeAll(ctx context.Context) {
	e.CloseDraft(ctx, nil)
	e.CloseEditor(ctx, nil)
}

// Workspace maps session ids to their entries.
type Workspace struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time
}

func New() *Workspace {
	return &Workspace{entries: map[string]*Entry{}, now: time.Now}
}

// Get returns the session's entry, creating it on first use.
func (w *Workspace) Get(sessionID string) *Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entries[sessionID]
	if !ok {
		e = &Entry{list: listing.NewState()}
		w.entries[sessionID] = e
	}
	e.mu.Lock()
	e.touched = w.now()
	e.mu.Unlock()
	return e
}

// Drop closes everything the session has open and forgets it.
func (w *Workspace) Drop(ctx context.Context, sessionID string) {
	w.mu.Lock()
	e, ok := w.entries[sessionID]
	delete(w.entries, sessionID)
	w.mu.Unlock()
	if ok {
		e.closeAll(ctx)
	}
}

// Sweep drops entries untouched for longer than idle, or whose session
// alive reports as gone. It returns how many were dropped.
func (w *Workspace) Sweep(ctx context.Context, idle time.Duration, alive func(sessionID string) bool) int {
	cutoff := w.now().Add(-idle)
	var stale []*Entry

	w.mu.Lock()
	for id, e := range w.entries {
		e.mu.Lock()
		old := e.touched.Before(cutoff)
		e.mu.Unlock()
		if old || (alive != nil && !alive(id)) {
			stale = append(stale, e)
			delete(w.entries, id)
		}
	}
	w.mu.Unlock()

	for _, e := range stale {
		e.closeAll(ctx)
	}
	if len(stale) > 0 {
		logrus.WithField("count", len(stale)).Info("swept idle workspaces")
	}
	return len(stale)
}

func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

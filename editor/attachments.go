package editor

import (
	"context"
	"io"
	"slices"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/previews"
	"github.com/sirupsen/logrus"
)

// Attachment is an image picked in a form but not uploaded to the catalog
// yet. Its bytes live in the preview store under ID until released.
type Attachment struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Preview     string `json:"preview"`
}

// attachments tracks the preview handles one form owns. Callers hold the
// owning form's lock.
type attachments struct {
	store previews.Store
	items []Attachment
}

func newAttachments(store previews.Store) *attachments {
	return &attachments{store: store}
}

func (a *attachments) add(ctx context.Context, fileName, contentType string, data []byte) (Attachment, error) {
	key := previews.NewKey()
	if err := a.store.Put(ctx, key, contentType, data); err != nil {
		return Attachment{}, err
	}
	att := Attachment{
		ID:          key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		Preview:     previews.URL(key),
	}
	a.items = append(a.items, att)
	return att, nil
}

// discard drops one attachment and releases its preview. Nothing goes to
// the catalog.
func (a *attachments) discard(ctx context.Context, id string) error {
	i := slices.IndexFunc(a.items, func(att Attachment) bool { return att.ID == id })
	if i < 0 {
		return ErrAttachmentNotFound
	}
	a.items = slices.Delete(a.items, i, i+1)
	a.release(ctx, id)
	return nil
}

// releaseAll empties the list and releases every preview.
func (a *attachments) releaseAll(ctx context.Context) {
	if a == nil {
		return
	}
	for _, att := range a.items {
		a.release(ctx, att.ID)
	}
	a.items = nil
}

// releaseSent drops the attachments whose ids were uploaded and releases
// their previews. Attachments added since stay.
func (a *attachments) releaseSent(ctx context.Context, sent []string) {
	if a == nil {
		return
	}
	kept := a.items[:0]
	for _, att := range a.items {
		if slices.Contains(sent, att.ID) {
			a.release(ctx, att.ID)
			continue
		}
		kept = append(kept, att)
	}
	a.items = kept
}

func (a *attachments) ids() []string {
	if a == nil {
		return nil
	}
	ids := make([]string, 0, len(a.items))
	for _, att := range a.items {
		ids = append(ids, att.ID)
	}
	return ids
}

func (a *attachments) empty() bool {
	return a == nil || len(a.items) == 0
}

func (a *attachments) release(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{"preview": key, "error": err}).Warn("failed to release preview")
	}
}

func (a *attachments) has(id string) bool {
	if a == nil {
		return false
	}
	return slices.ContainsFunc(a.items, func(att Attachment) bool { return att.ID == id })
}

func (a *attachments) list() []Attachment {
	if a == nil {
		return []Attachment{}
	}
	return append([]Attachment{}, a.items...)
}

// files turns the attachments into upload parts that stream from the
// preview store.
func (a *attachments) files() []catalog.File {
	if a == nil {
		return nil
	}
	out := make([]catalog.File, 0, len(a.items))
	for _, att := range a.items {
		key := att.ID
		out = append(out, catalog.File{
			Name:        att.FileName,
			ContentType: att.ContentType,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				rc, _, err := a.store.Open(ctx, key)
				return rc, err
			},
		})
	}
	return out
}

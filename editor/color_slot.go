package editor

import "github.com/princinho/sahoadmin/models"

type SlotMode string

const (
	SlotClosed  SlotMode = "closed"
	SlotAdding  SlotMode = "adding"
	SlotEditing SlotMode = "editing"
)

// ColorSlot is the single color form of a product editor: Closed, Adding a
// new color, or Editing an existing one. Each mode submits to a different
// endpoint.
type ColorSlot interface {
	Mode() SlotMode
	uploads() *attachments
}

type Closed struct{}

func (Closed) Mode() SlotMode { return SlotClosed }
func (Closed) uploads() *attachments { return nil }

// Adding is a draft color that does not exist in the catalog yet.
type Adding struct {
	Color ColorFields
	files *attachments
}

func (*Adding) Mode() SlotMode { return SlotAdding }
func (a *Adding) uploads() *attachments { return a.files }

// Editing is a working copy of a persisted color. Color.Images holds the
// persisted images that are kept; new images are in files.
type Editing struct {
	Color models.Color
	files *attachments
}

func (*Editing) Mode() SlotMode { return SlotEditing }
func (e *Editing) uploads() *attachments { return e.files }

func cloneColor(c models.Color) models.Color {
	c.Images = append([]models.Image{}, c.Images...)
	return c
}

// SlotView is the JSON shape of the color slot.
type SlotView struct {
	Mode        SlotMode       `json:"mode"`
	ColorID     string         `json:"colorId,omitempty"`
	ColorName   string         `json:"colorName,omitempty"`
	HexCode     string         `json:"hexCode,omitempty"`
	Images      []models.Image `json:"images,omitempty"`
	Attachments []Attachment   `json:"attachments"`
}

func viewOf(slot ColorSlot) SlotView {
	switch s := slot.(type) {
	case *Adding:
		return SlotView{
			Mode:        SlotAdding,
			ColorName:   s.Color.ColorName,
			HexCode:     s.Color.HexCode,
			Attachments: s.files.list(),
		}
	case *Editing:
		return SlotView{
			Mode:        SlotEditing,
			ColorID:     s.Color.Id,
			ColorName:   s.Color.ColorName,
			HexCode:     s.Color.HexCode,
			Images:      append([]models.Image{}, s.Color.Images...),
			Attachments: s.files.list(),
		}
	}
	return SlotView{Mode: SlotClosed, Attachments: []Attachment{}}
}

// Package clipboard keeps detached copies of entities between copy and paste.
package clipboard

import "github.com/inamate/flowdraw/internal/document"

const (
	InitialOffset = 20.0
	OffsetStep    = 50.0
)

// Clipboard holds detached entity copies. Each Paste shifts its output
// further from the originals so repeated pastes cascade instead of stacking.
type Clipboard struct {
	entries []*document.Entity
	pastes  int
}

func New() *Clipboard {
	return &Clipboard{}
}

// Store replaces the contents with copies of entities and resets the offset.
func (c *Clipboard) Store(entities []*document.Entity) {
	c.entries = make([]*document.Entity, 0, len(entities))
	for _, e := range entities {
		c.entries = append(c.entries, e.Clone())
	}
	c.pastes = 0
}

// Len returns the number of stored entries.
func (c *Clipboard) Len() int {
	return len(c.entries)
}

// Offset is the displacement the next Paste applies on both axes.
func (c *Clipboard) Offset() float64 {
	return InitialOffset + OffsetStep*float64(c.pastes)
}

// Paste returns fresh copies of the entries, translated by Offset and given
// IDs from newID. An empty clipboard returns nil and leaves the offset alone.
func (c *Clipboard) Paste(newID func() string) []*document.Entity {
	if len(c.entries) == 0 {
		return nil
	}
	offset := c.Offset()
	out := make([]*document.Entity, 0, len(c.entries))
	for _, e := range c.entries {
		p := e.Clone()
		p.ID = newID()
		p.Translate(offset, offset)
		out = append(out, p)
	}
	c.pastes++
	return out
}

// Clear drops all entries.
func (c *Clipboard) Clear() {
	c.entries = nil
	c.pastes = 0
}

package engine

import (
	"slices"

	"github.com/inamate/flowdraw/internal/control"
)

// Selection is the ordered set of overlays currently attached to entities.
// At most one overlay exists per entity.
type Selection struct {
	overlays []control.Overlay
}

// Add appends an overlay.
func (s *Selection) Add(o control.Overlay) {
	s.overlays = append(s.overlays, o)
}

// Items returns a copy of the overlays in selection order.
func (s *Selection) Items() []control.Overlay {
	return slices.Clone(s.overlays)
}

func (s *Selection) Len() int {
	return len(s.overlays)
}

// Find looks up an overlay by its ID.
func (s *Selection) Find(overlayID string) (control.Overlay, bool) {
	for _, o := range s.overlays {
		if o.ID() == overlayID {
			return o, true
		}
	}
	return nil, false
}

// ForEntity returns the overlay attached to an entity.
func (s *Selection) ForEntity(entityID string) (control.Overlay, bool) {
	for _, o := range s.overlays {
		if o.EntityID() == entityID {
			return o, true
		}
	}
	return nil, false
}

// Remove detaches one overlay.
func (s *Selection) Remove(overlayID string) bool {
	n := len(s.overlays)
	s.overlays = slices.DeleteFunc(s.overlays, func(o control.Overlay) bool { return o.ID() == overlayID })
	return len(s.overlays) != n
}

// ClearUnlocked destroys every unlocked overlay. Locked overlays stay
// selected.
func (s *Selection) ClearUnlocked() {
	s.overlays = slices.DeleteFunc(s.overlays, func(o control.Overlay) bool { return !o.Locked() })
}

// Reset drops everything, locked overlays included.
func (s *Selection) Reset() {
	s.overlays = nil
}

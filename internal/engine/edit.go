package engine

import (
	"log/slog"
	"strings"

	"github.com/inamate/flowdraw/internal/control"
	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/typeid"
)

// Copy stores detached copies of every unlocked selected entity, replacing
// the clipboard. The selection is left as is.
func (e *Engine) Copy() int {
	return e.copyFrom(e.selection.Items())
}

// Cut copies and then deletes the same selection list.
func (e *Engine) Cut() int {
	list := e.selection.Items()
	e.copyFrom(list)
	return e.deleteFrom(list)
}

// Paste adds the clipboard contents at the next cascade offset and selects
// them. It returns the new entity IDs.
func (e *Engine) Paste() []string {
	pasted := e.clipboard.Paste(typeid.NewEntityID)
	ids := make([]string, 0, len(pasted))
	for _, ent := range pasted {
		if err := e.place(ent); err != nil {
			slog.Warn("pasted entity not selectable", "entity", ent.ID, "error", err)
		}
		ids = append(ids, ent.ID)
	}
	return ids
}

// Delete removes every unlocked selected entity. Locked ones stay on the
// canvas and stay selected.
func (e *Engine) Delete() int {
	return e.deleteFrom(e.selection.Items())
}

// Lock locks every selected overlay.
func (e *Engine) Lock() {
	e.setLocked(true)
}

// Unlock unlocks every selected overlay.
func (e *Engine) Unlock() {
	e.setLocked(false)
}

func (e *Engine) setLocked(locked bool) {
	for _, o := range e.selection.Items() {
		o.SetLocked(locked)
	}
	if locked {
		e.endDrag()
	}
}

func (e *Engine) copyFrom(list []control.Overlay) int {
	var entities []*document.Entity
	for _, o := range list {
		if o.Locked() {
			continue
		}
		if ent, ok := e.diagram.Get(o.EntityID()); ok {
			entities = append(entities, ent)
		}
	}
	e.clipboard.Store(entities)
	return len(entities)
}

func (e *Engine) deleteFrom(list []control.Overlay) int {
	e.endDrag()
	n := 0
	for _, o := range list {
		if o.Locked() {
			continue
		}
		e.diagram.Remove(o.EntityID())
		e.selection.Remove(o.ID())
		n++
	}
	e.settleMode()
	return n
}

// Key is a keyboard event. Shortcut is the platform command modifier.
type Key struct {
	Code     string `json:"code"`
	Shortcut bool   `json:"shortcut"`
}

// KeyPress maps editing keys to edit operations. It reports whether the key
// was handled.
func (e *Engine) KeyPress(k Key) bool {
	code := strings.ToLower(k.Code)
	switch {
	case code == "backspace" || code == "delete":
		e.Delete()
	case k.Shortcut && code == "c":
		e.Copy()
	case k.Shortcut && code == "v":
		e.Paste()
	case k.Shortcut && code == "x":
		e.Cut()
	default:
		return false
	}
	return true
}

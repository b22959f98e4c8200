package document

import (
	"fmt"
	"slices"

	"github.com/inamate/flowdraw/internal/geom"
)

// Diagram owns the entities on the canvas, kept in z-order.
type Diagram struct {
	order    []string
	entities map[string]*Entity
}

// NewDiagram returns an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{entities: make(map[string]*Entity)}
}

// Add places the entity on top of the stack. Adding an existing ID replaces it
// in place.
func (d *Diagram) Add(e *Entity) {
	if _, ok := d.entities[e.ID]; !ok {
		d.order = append(d.order, e.ID)
	}
	d.entities[e.ID] = e
}

// Get looks up an entity by ID.
func (d *Diagram) Get(id string) (*Entity, bool) {
	e, ok := d.entities[id]
	return e, ok
}

// Remove deletes the entity. It reports whether anything was removed.
func (d *Diagram) Remove(id string) bool {
	if _, ok := d.entities[id]; !ok {
		return false
	}
	delete(d.entities, id)
	d.order = slices.DeleteFunc(d.order, func(v string) bool { return v == id })
	return true
}

// Len returns the number of entities.
func (d *Diagram) Len() int {
	return len(d.order)
}

// Entities returns the entities back to front.
func (d *Diagram) Entities() []*Entity {
	out := make([]*Entity, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.entities[id])
	}
	return out
}

// Bounds returns the union of every entity's bounds.
func (d *Diagram) Bounds() geom.Rect {
	var r geom.Rect
	for i, e := range d.Entities() {
		if i == 0 {
			r = e.Bounds()
			continue
		}
		r = r.Union(e.Bounds())
	}
	return r
}

// Snapshot serialises the diagram.
func (d *Diagram) Snapshot() (Snapshot, error) {
	s := Snapshot{Version: SnapshotVersion, Entities: make([]Record, 0, len(d.order))}
	for _, e := range d.Entities() {
		r, err := e.Record()
		if err != nil {
			return Snapshot{}, err
		}
		s.Entities = append(s.Entities, r)
	}
	return s, nil
}

// DiagramFromSnapshot rebuilds a diagram, rejecting the whole snapshot on the
// first invalid record.
func DiagramFromSnapshot(s Snapshot) (*Diagram, error) {
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than %d", s.Version, SnapshotVersion)
	}
	d := NewDiagram()
	for _, r := range s.Entities {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		if _, dup := d.entities[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %s", e.ID)
		}
		d.Add(e)
	}
	return d, nil
}

package document

import (
	"encoding/json"
	"fmt"
)

// Shape names used in records.
const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeEllipse   = "ellipse"
	ShapePolygon   = "polygon"
	ShapeImage     = "image"
	ShapeTextBox   = "text"
	ShapeConnector = "connector"
)

// SnapshotVersion is the current record layout version.
const SnapshotVersion = 1

// Record is the serialisable form of one entity.
type Record struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	Shape    string          `json:"shape"`
	Geometry json.RawMessage `json:"geometry"`
	Style    Style           `json:"style"`
}

// Snapshot is the serialisable form of a whole diagram, back to front.
type Snapshot struct {
	Version  int      `json:"version"`
	Entities []Record `json:"entities"`
}

// ShapeName returns the record name of a shape variant.
func ShapeName(s Shape) string {
	switch s.(type) {
	case *Rectangle:
		return ShapeRectangle
	case *Circle:
		return ShapeCircle
	case *Ellipse:
		return ShapeEllipse
	case *Polygon:
		return ShapePolygon
	case *Image:
		return ShapeImage
	case *TextBox:
		return ShapeTextBox
	case *Connector:
		return ShapeConnector
	default:
		panic(fmt.Sprintf("document: unknown shape %T", s))
	}
}

// Record captures the entity's kind, geometry and style.
func (e *Entity) Record() (Record, error) {
	geometry, err := json.Marshal(e.Shape)
	if err != nil {
		return Record{}, fmt.Errorf("marshal %s geometry: %w", e.ID, err)
	}
	return Record{
		ID:       e.ID,
		Kind:     e.Kind,
		Shape:    ShapeName(e.Shape),
		Geometry: geometry,
		Style:    e.Style,
	}, nil
}

// FromRecord rebuilds an entity, enforcing shape invariants.
func FromRecord(r Record) (*Entity, error) {
	var s Shape
	switch r.Shape {
	case ShapeRectangle:
		s = &Rectangle{}
	case ShapeCircle:
		s = &Circle{}
	case ShapeEllipse:
		s = &Ellipse{}
	case ShapePolygon:
		s = &Polygon{}
	case ShapeImage:
		s = &Image{}
	case ShapeTextBox:
		s = &TextBox{}
	case ShapeConnector:
		s = &Connector{}
	default:
		return nil, &UnsupportedKindError{Kind: r.Shape}
	}
	if err := json.Unmarshal(r.Geometry, s); err != nil {
		return nil, fmt.Errorf("decode %s geometry of %s: %w", r.Shape, r.ID, err)
	}

	switch v := s.(type) {
	case *Connector:
		if err := v.Validate(r.ID); err != nil {
			return nil, err
		}
	case *Polygon:
		if len(v.Points) < 3 {
			return nil, &InvalidGeometryError{EntityID: r.ID, Reason: fmt.Sprintf("polygon has %d points", len(v.Points))}
		}
	}

	style := r.Style
	if err := style.Normalize(); err != nil {
		return nil, fmt.Errorf("entity %s: %w", r.ID, err)
	}
	return &Entity{ID: r.ID, Kind: r.Kind, Shape: s, Style: style}, nil
}

package document

import "github.com/inamate/flowdraw/internal/geom"

// Kind names the toolbox entry an entity was created from.
type Kind string

const (
	KindRectangle   Kind = "Rectangle"
	KindCircle      Kind = "Circle"
	KindEllipse     Kind = "Ellipse"
	KindTriangle    Kind = "Triangle"
	KindDecision    Kind = "Decision"
	KindInputOutput Kind = "Input/Output"
	KindText        Kind = "Text"
	KindLine        Kind = "Line"
	KindArrow       Kind = "Arrow"
	KindProcess     Kind = "Process"
	KindStep        Kind = "Step"
	KindDocument    Kind = "Document"
	KindStorage     Kind = "Storage"
	KindActor       Kind = "Actor"
	KindImage       Kind = "Image"
)

// Kinds lists every toolbox kind in palette order.
var Kinds = []Kind{
	KindRectangle, KindCircle, KindEllipse, KindTriangle, KindDecision,
	KindInputOutput, KindText, KindLine, KindArrow,
	KindProcess, KindStep, KindDocument, KindStorage, KindActor, KindImage,
}

// IsGlyph reports whether the kind is rendered from a bundled image resource.
func (k Kind) IsGlyph() bool {
	switch k {
	case KindProcess, KindStep, KindDocument, KindStorage, KindActor:
		return true
	}
	return false
}

// Shape is the closed set of geometry variants. Only the types in this
// package implement it.
type Shape interface {
	shape()
}

type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Circle struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

type Ellipse struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	RadiusX float64 `json:"radiusX"`
	RadiusY float64 `json:"radiusY"`
}

// Polygon points are local to the layout origin.
type Polygon struct {
	Points  []geom.Point `json:"points"`
	LayoutX float64      `json:"layoutX"`
	LayoutY float64      `json:"layoutY"`
}

type Image struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FitWidth    float64 `json:"fitWidth"`
	FitHeight   float64 `json:"fitHeight"`
	Source      string  `json:"source"`
	PixelWidth  int     `json:"pixelWidth,omitempty"`
	PixelHeight int     `json:"pixelHeight,omitempty"`
}

type TextBox struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Text       string  `json:"text"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
}

// Connector is a four-point polyline with an optional arrowhead on its last
// segment.
type Connector struct {
	Points []geom.Point `json:"points"`
	Head   *Arrowhead   `json:"head,omitempty"`
}

type Arrowhead struct {
	Points [3]geom.Point `json:"points"`
	Fill   string        `json:"fill"`
}

func (*Rectangle) shape() {}
func (*Circle) shape()    {}
func (*Ellipse) shape()   {}
func (*Polygon) shape()   {}
func (*Image) shape()     {}
func (*TextBox) shape()   {}
func (*Connector) shape() {}

// ConnectorPoints is the number of control points every connector carries.
const ConnectorPoints = 4

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Entity is one drawable element of a diagram. Entities are owned by a
// Diagram and referenced elsewhere by ID.
type Entity struct {
	ID    string
	Kind  Kind
	Shape Shape
	Style Style
}

// IsConnector reports whether the entity is edited through line handles.
func (e *Entity) IsConnector() bool {
	_, ok := e.Shape.(*Connector)
	return ok
}

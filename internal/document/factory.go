package document

import (
	"path/filepath"
	"strings"

	"github.com/inamate/flowdraw/internal/geom"
	"github.com/inamate/flowdraw/internal/typeid"
)

// Default image frame for glyphs and imported images.
const (
	ImageFitWidth  = 100.0
	ImageFitHeight = 60.0
)

// ImageInfo describes a decoded image resource.
type ImageInfo struct {
	Width  int
	Height int
}

// ResourceLoader resolves image resources by path.
type ResourceLoader interface {
	Stat(path string) (ImageInfo, error)
}

// Factory constructs entities with their default geometry and style.
type Factory struct {
	loader   ResourceLoader
	glyphDir string
}

// NewFactory returns a factory. Glyph kinds resolve to <glyphDir>/<kind>.png;
// an empty glyphDir leaves them without a path.
func NewFactory(loader ResourceLoader, glyphDir string) *Factory {
	return &Factory{loader: loader, glyphDir: glyphDir}
}

// GlyphPath returns the resource path for a glyph kind, or "" when unset.
func (f *Factory) GlyphPath(kind Kind) string {
	if f.glyphDir == "" || !kind.IsGlyph() {
		return ""
	}
	return filepath.Join(f.glyphDir, strings.ToLower(string(kind))+".png")
}

// CreateShape builds a new entity of the given kind anchored at (x, y). On
// error no entity is returned.
func (f *Factory) CreateShape(kind string, x, y float64) (*Entity, error) {
	k := Kind(kind)
	outline := Style{Fill: ColorWhite, Stroke: ColorBlack, StrokeWidth: 1}

	switch k {
	case KindRectangle:
		return f.entity(k, &Rectangle{X: x, Y: y, Width: 100, Height: 50}, outline), nil
	case KindCircle:
		return f.entity(k, &Circle{CenterX: x, CenterY: y, Radius: 50}, outline), nil
	case KindEllipse:
		return f.entity(k, &Ellipse{CenterX: x, CenterY: y, RadiusX: 50, RadiusY: 30}, outline), nil
	case KindTriangle:
		return f.entity(k, polygon(x, y, 50, 0, 0, 100, 100, 100), outline), nil
	case KindDecision:
		return f.entity(k, polygon(x, y, 50, 0, 100, 50, 50, 100, 0, 50), outline), nil
	case KindInputOutput:
		return f.entity(k, polygon(x, y, 0, 0, 80, 0, 100, 50, 20, 50), outline), nil
	case KindText:
		text := &TextBox{X: x, Y: y, Width: 100, Height: 30, Text: "text", FontFamily: "Helvetica", FontSize: 12}
		return f.entity(k, text, Style{Fill: ColorBlack}), nil
	case KindLine, KindArrow:
		c := &Connector{Points: []geom.Point{
			{X: x, Y: y}, {X: x + 50, Y: y}, {X: x + 100, Y: y}, {X: x + 150, Y: y},
		}}
		if k == KindArrow {
			c.Head = &Arrowhead{Fill: ColorBlack}
			c.RecomputeHead()
		}
		return f.entity(k, c, Style{Stroke: ColorBlack, StrokeWidth: 1}), nil
	case KindProcess, KindStep, KindDocument, KindStorage, KindActor:
		path := f.GlyphPath(k)
		if path == "" {
			return nil, &MissingPathError{Kind: k}
		}
		return f.image(k, path, x, y)
	case KindImage:
		return nil, &MissingPathError{Kind: k}
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

// CreateImageElement builds an image entity from a file path, fitted to the
// default 100x60 frame. An unreadable path yields ResourceNotFoundError.
func (f *Factory) CreateImageElement(path string, x, y float64) (*Entity, error) {
	if path == "" {
		return nil, &MissingPathError{Kind: KindImage}
	}
	return f.image(KindImage, path, x, y)
}

func (f *Factory) image(kind Kind, path string, x, y float64) (*Entity, error) {
	img := &Image{X: x, Y: y, FitWidth: ImageFitWidth, FitHeight: ImageFitHeight, Source: path}
	if f.loader != nil {
		info, err := f.loader.Stat(path)
		if err != nil {
			return nil, &ResourceNotFoundError{Path: path, Err: err}
		}
		img.PixelWidth, img.PixelHeight = info.Width, info.Height
	}
	return f.entity(kind, img, Style{}), nil
}

func (f *Factory) entity(kind Kind, s Shape, style Style) *Entity {
	return &Entity{ID: typeid.NewEntityID(), Kind: kind, Shape: s, Style: style}
}

func polygon(x, y float64, coords ...float64) *Polygon {
	p := &Polygon{LayoutX: x, LayoutY: y}
	for i := 0; i+1 < len(coords); i += 2 {
		p.Points = append(p.Points, geom.Point{X: coords[i], Y: coords[i+1]})
	}
	return p
}

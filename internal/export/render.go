// Package export rasterises diagrams to PNG.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inamate/flowdraw/internal/document"
)

const (
	DefaultPadding = 20.0
	MinScale       = 0.25
	MaxScale       = 4.0
)

// ImageSource supplies pixels for image entities at their frame size.
type ImageSource interface {
	Scaled(path string, width, height int) (image.Image, error)
}

type Options struct {
	Scale      float64
	Padding    float64
	Background color.Color
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

func (o Options) validate() error {
	if o.Scale < MinScale || o.Scale > MaxScale {
		return fmt.Errorf("scale %v outside [%v, %v]", o.Scale, MinScale, MaxScale)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding %v is negative", o.Padding)
	}
	return nil
}

type faceKey struct {
	mono bool
	size float64
}

// Renderer draws diagrams with gg. Font faces are not safe for concurrent
// use, so renders are serialised.
type Renderer struct {
	mu      sync.Mutex
	images  ImageSource
	mono    *truetype.Font
	regular *truetype.Font
	faces   map[faceKey]font.Face
}

func NewRenderer(images ImageSource) (*Renderer, error) {
	mono, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return &Renderer{
		images:  images,
		mono:    mono,
		regular: regular,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Render rasterises every entity of d, back to front, into an image framed
// on the diagram bounds plus padding.
func (r *Renderer) Render(d *document.Diagram, opts Options) (image.Image, error) {
	dc, err := r.draw(d, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *Renderer) WritePNG(w io.Writer, d *document.Diagram, opts Options) error {
	dc, err := r.draw(d, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (r *Renderer) SavePNG(path string, d *document.Diagram, opts Options) error {
	dc, err := r.draw(d, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func (r *Renderer) draw(d *document.Diagram, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bounds := d.Bounds()
	width := int(math.Ceil((bounds.Width + 2*opts.Padding) * opts.Scale))
	height := int(math.Ceil((bounds.Height + 2*opts.Padding) * opts.Scale))
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(opts.Background)
	dc.Clear()

	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(opts.Padding-bounds.X, opts.Padding-bounds.Y)

	for _, e := range d.Entities() {
		r.drawEntity(dc, e, opts.Scale)
	}
	return dc, nil
}

func (r *Renderer) drawEntity(dc *gg.Context, e *document.Entity, scale float64) {
	switch s := e.Shape.(type) {
	case *document.Rectangle:
		dc.DrawRectangle(s.X, s.Y, s.Width, s.Height)
		paint(dc, e.Style, scale)
	case *document.Circle:
		dc.DrawCircle(s.CenterX, s.CenterY, s.Radius)
		paint(dc, e.Style, scale)
	case *document.Ellipse:
		dc.DrawEllipse(s.CenterX, s.CenterY, s.RadiusX, s.RadiusY)
		paint(dc, e.Style, scale)
	case *document.Polygon:
		for i, p := range s.Points {
			if i == 0 {
				dc.MoveTo(s.LayoutX+p.X, s.LayoutY+p.Y)
				continue
			}
			dc.LineTo(s.LayoutX+p.X, s.LayoutY+p.Y)
		}
		dc.ClosePath()
		paint(dc, e.Style, scale)
	case *document.Image:
		r.drawImage(dc, e.ID, s)
	case *document.TextBox:
		r.drawText(dc, e.Style, s)
	case *document.Connector:
		for i, p := range s.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
		stroke(dc, e.Style, scale)
		if s.Head != nil {
			dc.MoveTo(s.Head.Points[0].X, s.Head.Points[0].Y)
			dc.LineTo(s.Head.Points[1].X, s.Head.Points[1].Y)
			dc.LineTo(s.Head.Points[2].X, s.Head.Points[2].Y)
			dc.ClosePath()
			if c, ok := document.ParseColor(s.Head.Fill); ok {
				dc.SetColor(c)
				dc.Fill()
			}
			dc.ClearPath()
		}
	default:
		panic(fmt.Sprintf("export: unhandled shape %T", e.Shape))
	}
}

// paint fills then strokes the current path.
func paint(dc *gg.Context, st document.Style, scale float64) {
	if c, ok := document.ParseColor(st.Fill); ok {
		dc.SetColor(c)
		dc.FillPreserve()
	}
	stroke(dc, st, scale)
}

func stroke(dc *gg.Context, st document.Style, scale float64) {
	c, ok := document.ParseColor(st.Stroke)
	if !ok || st.StrokeWidth == 0 {
		dc.ClearPath()
		return
	}
	dc.SetColor(c)
	dc.SetLineWidth(st.StrokeWidth * scale)
	dc.Stroke()
}

func (r *Renderer) drawImage(dc *gg.Context, id string, s *document.Image) {
	w, h := int(math.Round(s.FitWidth)), int(math.Round(s.FitHeight))
	if r.images != nil && w > 0 && h > 0 {
		img, err := r.images.Scaled(s.Source, w, h)
		if err == nil {
			dc.DrawImage(img, int(math.Round(s.X)), int(math.Round(s.Y)))
			return
		}
		slog.Warn("export image placeholder", "error", err, "entity", id, "source", s.Source)
	}
	dc.DrawRectangle(s.X, s.Y, s.FitWidth, s.FitHeight)
	dc.SetColor(color.Gray{Y: 0xc0})
	dc.SetLineWidth(1)
	dc.Stroke()
}

func (r *Renderer) drawText(dc *gg.Context, st document.Style, s *document.TextBox) {
	if s.Text == "" {
		return
	}
	dc.SetFontFace(r.face(s.FontFamily, s.FontSize))
	c, ok := document.ParseColor(st.Fill)
	if !ok {
		c, _ = document.ParseColor(document.ColorBlack)
	}
	dc.SetColor(c)
	dc.DrawStringAnchored(s.Text, s.X+s.Width/2, s.Y+s.Height/2, 0.5, 0.5)
}

// face maps the editor's font families onto the two bundled Go fonts.
func (r *Renderer) face(family string, size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	key := faceKey{mono: family == "Courier New", size: size}
	if f, ok := r.faces[key]; ok {
		return f
	}
	ttf := r.regular
	if key.mono {
		ttf = r.mono
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f
}

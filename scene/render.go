// seehuhn.de/go/swf - a library for writing SWF movie files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/swf"
	"seehuhn.de/go/swf/sfntface"
)

// frameDepth is the display list depth used for the frame contents.
const frameDepth = 1

// builtinFonts lists the fonts which can be used without a font file.
var builtinFonts = map[string][]byte{
	"go":         goregular.TTF,
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-italic":  goitalic.TTF,
	"go-mono":    gomono.TTF,
}

var errNoPoints = errors.New("not enough points")

// NewWriter creates a writer for the movie described by the scene.
// The movie size is converted from points to twips.
func (s *Scene) NewWriter() (*swf.Writer, error) {
	opt, err := s.Options()
	if err != nil {
		return nil, err
	}
	return swf.NewWriter(
		swf.ToTwips(s.Movie.Width), swf.ToTwips(s.Movie.Height),
		s.Movie.DocWidth, s.Movie.DocHeight, opt)
}

// Render adds all frames of the scene to w.
func (s *Scene) Render(w *swf.Writer) error {
	if s.Movie.Background != "" {
		col, err := ParseColor(s.Movie.Background)
		if err != nil {
			return err
		}
		err = w.SetBackgroundColor(col)
		if err != nil {
			return err
		}
	}

	r := &renderer{
		scene: s,
		faces: make(map[string]swf.Face),
	}
	placed := false
	for i, f := range s.Frames {
		g, err := r.graphic(f.Items)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		id, err := w.DefineGraphic(g)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}

		if placed {
			err = w.RemoveShape(frameDepth)
			if err != nil {
				return err
			}
			placed = false
		}
		if id != 0 {
			err = w.PlaceShape(id, frameDepth, 0, 0)
			if err != nil {
				return err
			}
			placed = true
		}

		if f.Label != "" {
			err = w.FrameLabel(f.Label)
			if err != nil {
				return err
			}
		}
		if f.WaitOnClick {
			// WaitOnClick ends the frame
			err = w.WaitOnClick(frameDepth + 1)
			if err != nil {
				return err
			}
			continue
		}
		if f.Stop {
			err = w.Stop()
			if err != nil {
				return err
			}
		}
		err = w.ShowFrame()
		if err != nil {
			return err
		}
	}
	return nil
}

type renderer struct {
	scene *Scene
	faces map[string]swf.Face
}

func (r *renderer) graphic(items []Item) (swf.Graphic, error) {
	var g swf.Graphic
	for j, it := range items {
		a, err := r.action(&it)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", j+1, it.Kind, err)
		}
		g = append(g, a)
	}
	return g, nil
}

func (r *renderer) action(it *Item) (swf.Action, error) {
	switch it.Kind {
	case "rect":
		rect, err := it.rect()
		if err != nil {
			return nil, err
		}
		fill, stroke, err := it.paint()
		if err != nil {
			return nil, err
		}
		a := swf.RectAction{Rect: rect, Fill: fill, Stroke: stroke}
		if len(it.Radius) > 0 {
			a.RX = it.Radius[0]
			a.RY = it.Radius[len(it.Radius)-1]
		}
		return a, nil

	case "ellipse":
		rect, err := it.rect()
		if err != nil {
			return nil, err
		}
		fill, stroke, err := it.paint()
		if err != nil {
			return nil, err
		}
		return swf.EllipseAction{Rect: rect, Fill: fill, Stroke: stroke}, nil

	case "polygon":
		p, err := it.polygon(3)
		if err != nil {
			return nil, err
		}
		fill, stroke, err := it.paint()
		if err != nil {
			return nil, err
		}
		return swf.PolygonAction{Polygon: p, Fill: fill, Stroke: stroke}, nil

	case "line":
		p, err := it.polygon(2)
		if err != nil {
			return nil, err
		}
		_, stroke, err := it.paint()
		if err != nil {
			return nil, err
		}
		if stroke == nil {
			return nil, errors.New("line without stroke color")
		}
		return swf.LineAction{From: p.Points[0], To: p.Points[1], Stroke: *stroke}, nil

	case "gradient":
		if it.Gradient == nil {
			return nil, errors.New("missing gradient")
		}
		grad, err := it.Gradient.convert()
		if err != nil {
			return nil, err
		}
		var pp swf.PolyPolygon
		if it.Points != nil {
			p, err := it.polygon(3)
			if err != nil {
				return nil, err
			}
			pp = swf.PolyPolygon{p}
		} else {
			rect, err := it.rect()
			if err != nil {
				return nil, err
			}
			pp = swf.PolyPolygon{rect.Polygon()}
		}
		return swf.GradientAction{PolyPolygon: pp, Gradient: grad}, nil

	case "text":
		return r.text(it)

	case "image":
		rect, err := it.rect()
		if err != nil {
			return nil, err
		}
		img, err := r.image(it.Image)
		if err != nil {
			return nil, err
		}
		return swf.BitmapAction{Dest: rect, Bitmap: swf.Bitmap{Image: img}}, nil

	case "clip":
		if it.Points == nil && it.Rect == nil {
			return swf.ClipAction{}, nil
		}
		var pp swf.PolyPolygon
		if it.Points != nil {
			p, err := it.polygon(3)
			if err != nil {
				return nil, err
			}
			pp = swf.PolyPolygon{p}
		} else {
			rect, err := it.rect()
			if err != nil {
				return nil, err
			}
			pp = swf.PolyPolygon{rect.Polygon()}
		}
		return swf.ClipAction{Clip: &pp}, nil

	case "transparency":
		return swf.TransparencyAction{Transparency: it.Transparency}, nil

	default:
		return nil, fmt.Errorf("unknown item kind %q", it.Kind)
	}
}

func (r *renderer) text(it *Item) (swf.Action, error) {
	if len(it.Points) != 1 || len(it.Points[0]) != 2 {
		return nil, errors.New("text needs exactly one point")
	}
	face, err := r.face(it.Font)
	if err != nil {
		return nil, err
	}
	col, err := parseColorDefault(it.Fill, "#000000")
	if err != nil {
		return nil, err
	}
	size := it.Size
	if size <= 0 {
		size = 12
	}
	run := swf.TextRun{
		Pos:  swf.Point{X: it.Points[0][0], Y: it.Points[0][1]},
		Text: it.Text,
		Style: swf.TextStyle{
			Face:      face,
			Size:      size,
			Color:     col,
			Angle:     it.Angle,
			Underline: it.Underline,
			Strikeout: it.Strikeout,
		},
	}
	return swf.TextAction{Run: run}, nil
}

// face returns the font with the given name.  Names are looked up in the
// [fonts] table of the scene first, and then in the list of built-in fonts.
func (r *renderer) face(name string) (swf.Face, error) {
	if name == "" {
		name = "go"
	}
	if f, ok := r.faces[name]; ok {
		return f, nil
	}

	var data []byte
	if fname, ok := r.scene.Fonts[name]; ok {
		var err error
		data, err = os.ReadFile(r.scene.resolve(fname))
		if err != nil {
			return nil, err
		}
	} else if builtin, ok := builtinFonts[strings.ToLower(name)]; ok {
		data = builtin
	} else {
		return nil, fmt.Errorf("unknown font %q", name)
	}

	f, err := sfntface.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	r.faces[name] = f
	return f, nil
}

func (r *renderer) image(name string) (image.Image, error) {
	if name == "" {
		return nil, errors.New("missing image file name")
	}
	fd, err := os.Open(r.scene.resolve(name))
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func (it *Item) rect() (swf.Rect, error) {
	if len(it.Rect) != 4 {
		return swf.Rect{}, errors.New("rect needs four coordinates")
	}
	return swf.Rect{
		XMin: it.Rect[0],
		YMin: it.Rect[1],
		XMax: it.Rect[2],
		YMax: it.Rect[3],
	}, nil
}

func (it *Item) polygon(minPoints int) (swf.Polygon, error) {
	if len(it.Points) < minPoints {
		return swf.Polygon{}, errNoPoints
	}
	pts := make([]swf.Point, len(it.Points))
	for i, xy := range it.Points {
		if len(xy) != 2 {
			return swf.Polygon{}, fmt.Errorf("point %d: need two coordinates", i+1)
		}
		pts[i] = swf.Point{X: xy[0], Y: xy[1]}
	}
	return swf.NewPolygon(pts...), nil
}

func (it *Item) paint() (swf.FillStyle, *swf.Stroke, error) {
	var fill swf.FillStyle
	if it.Fill != "" {
		col, err := ParseColor(it.Fill)
		if err != nil {
			return nil, nil, err
		}
		fill = swf.SolidFill{Color: col}
	}

	var stroke *swf.Stroke
	if it.Stroke != "" {
		col, err := ParseColor(it.Stroke)
		if err != nil {
			return nil, nil, err
		}
		stroke = &swf.Stroke{Width: it.StrokeWidth, Color: col}
	}

	if fill == nil && stroke == nil {
		return nil, nil, errors.New("neither fill nor stroke given")
	}
	return fill, stroke, nil
}

var gradientStyles = map[string]swf.GradientStyle{
	"":           swf.GradientLinear,
	"linear":     swf.GradientLinear,
	"axial":      swf.GradientAxial,
	"radial":     swf.GradientRadial,
	"elliptical": swf.GradientElliptical,
	"square":     swf.GradientSquare,
	"rect":       swf.GradientRect,
}

func (g *Gradient) convert() (*swf.Gradient, error) {
	style, ok := gradientStyles[strings.ToLower(g.Style)]
	if !ok {
		return nil, fmt.Errorf("unknown gradient style %q", g.Style)
	}
	start, err := parseColorDefault(g.Start, "#000000")
	if err != nil {
		return nil, err
	}
	end, err := parseColorDefault(g.End, "#ffffff")
	if err != nil {
		return nil, err
	}
	return &swf.Gradient{
		Style:   style,
		Angle:   g.Angle,
		Start:   start,
		End:     end,
		OffsetX: g.OffsetX,
		OffsetY: g.OffsetY,
	}, nil
}

// Implements the document transforms used to derive icon variants
// from the canonical artwork: pad overlay synthesis, recoloring
// and canvas squaring. Every transform is pure: it returns a new
// tree and leaves its input untouched.
package svgedit

import (
	"encoding/xml"
	"math"
	"strings"

	"github.com/benoitkugler/icongen/svgdom"
)

type (
	// Layout groups the pad grid geometry and the reference
	// canvas it was tuned against.
	Layout struct {
		PadSize   float64 // side of one pad
		PadGap    float64 // spacing between adjacent pads
		PadRadius float64 // rounded corner radius
		PadTop    float64 // y of the top row, tuned by hand against the belly curve
		CanvasW   float64 // reference canvas the pads are centered on
		CanvasH   float64
	}

	// Palette groups the color constants of the icon set.
	Palette struct {
		SourceBlue string // the artwork's original blue
		GoBlue     string // official Go blue, substituted on the app icon
		PadFill    string // pad overlay on the app icon
		CutoutFill string // pad mask layer for the tray cutout
		TrayLight  string // tray silhouette, light mode
		TrayDark   string // tray silhouette, dark mode
	}
)

// DefaultLayout matches the canonical gopher artwork.
var DefaultLayout = Layout{
	PadSize:   85,
	PadGap:    14,
	PadRadius: 10,
	PadTop:    260,
	CanvasW:   401.98,
	CanvasH:   559.472,
}

// DefaultPalette holds the colors of the shipped icon set.
var DefaultPalette = Palette{
	SourceBlue: "#6AD7E5",
	GoBlue:     "#00ADD8",
	PadFill:    "#FFFFFF",
	CutoutFill: "black",
	TrayLight:  "white",
	TrayDark:   "black",
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Pads builds the 2x2 grid of rounded pad rectangles as a new group,
// filled with the given color. The column is centered on the canvas
// midline (rounded to a whole pixel); the vertical start is the tuned
// Layout constant. Deterministic: two calls yield identical trees.
func Pads(l Layout, fill string) *svgdom.Element {
	startX := math.Round(l.CanvasW/2) - (2*l.PadSize+l.PadGap)/2
	startY := l.PadTop
	step := l.PadSize + l.PadGap

	g := &svgdom.Element{Name: "g", Attrs: []xml.Attr{attr("id", "midi-pads")}}
	positions := [4][2]float64{
		{startX, startY}, {startX + step, startY},
		{startX, startY + step}, {startX + step, startY + step},
	}
	for _, pos := range positions {
		g.Children = append(g.Children, &svgdom.Element{
			Name: "rect",
			Attrs: []xml.Attr{
				attr("x", svgdom.FormatNumber(pos[0])),
				attr("y", svgdom.FormatNumber(pos[1])),
				attr("width", svgdom.FormatNumber(l.PadSize)),
				attr("height", svgdom.FormatNumber(l.PadSize)),
				attr("rx", svgdom.FormatNumber(l.PadRadius)),
				attr("ry", svgdom.FormatNumber(l.PadRadius)),
				attr("fill", fill),
			},
		})
	}
	return g
}

// RecolorFill returns a copy of the document in which every element
// whose fill matches from (case-insensitively) is refilled with to.
// Geometry and all other attributes are untouched.
func RecolorFill(doc *svgdom.Document, from, to string) *svgdom.Document {
	out := doc.Clone()
	out.Root.Walk(func(e *svgdom.Element) {
		if v, ok := e.Attr("fill"); ok && strings.EqualFold(v, from) {
			e.SetAttr("fill", to)
		}
	})
	return out
}

// Silhouette returns a copy of the document flattened to a single
// color, usable as a mask or solid body layer. The root children are
// wrapped in one group; each element and each of its descendants is
// classified independently by its own fill attribute: painted or
// default-filled elements get the color, fill="none" is kept, and any
// stroke attribute is recolored regardless of its value.
func Silhouette(doc *svgdom.Document, color string) *svgdom.Document {
	out := doc.Clone()
	body := &svgdom.Element{Name: "g", Children: out.Root.Children}
	out.Root.Children = []*svgdom.Element{body}

	for _, child := range body.Children {
		child.Walk(func(e *svgdom.Element) {
			switch e.FillState() {
			case svgdom.FillPainted, svgdom.FillUnset:
				e.SetAttr("fill", color)
			}
			if _, ok := e.Attr("stroke"); ok {
				e.SetAttr("stroke", color)
			}
		})
	}
	return out
}

// Square returns a copy of the document on a square canvas whose side
// is max(w, h) of the root viewBox. The original content is wrapped in
// a translation group that centers it, padding the shorter axis
// symmetrically; the new root carries the source namespace
// declarations and viewBox, width and height all set to the side.
func Square(doc *svgdom.Document) (*svgdom.Document, error) {
	vb, err := doc.ViewBox()
	if err != nil {
		return nil, err
	}
	side := math.Max(vb.W, vb.H)
	dx := (side - vb.W) / 2
	dy := (side - vb.H) / 2

	newRoot := &svgdom.Element{Name: "svg"}
	newRoot.Attrs = append(newRoot.Attrs, doc.Root.Namespaces()...)
	if len(newRoot.Attrs) == 0 {
		newRoot.Attrs = append(newRoot.Attrs, attr("xmlns", svgdom.SVGNamespace))
	}
	newRoot.Attrs = append(newRoot.Attrs,
		attr("viewBox", svgdom.ViewBox{W: side, H: side}.String()),
		attr("width", svgdom.FormatNumber(side)),
		attr("height", svgdom.FormatNumber(side)),
		attr("version", "1.1"),
	)

	content := &svgdom.Element{
		Name: "g",
		Attrs: []xml.Attr{attr("transform",
			"translate("+svgdom.FormatNumber(dx)+", "+svgdom.FormatNumber(dy)+")")},
	}
	for _, child := range doc.Root.Children {
		content.Children = append(content.Children, child.Clone())
	}
	newRoot.Children = []*svgdom.Element{content}
	return &svgdom.Document{Root: newRoot}, nil
}

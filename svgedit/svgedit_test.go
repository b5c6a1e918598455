package svgedit

import (
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/icongen/svgdom"
)

func mustRead(t *testing.T, src string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.ReadDocument(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func attrOf(t *testing.T, e *svgdom.Element, name string) string {
	t.Helper()
	v, ok := e.Attr(name)
	if !ok {
		t.Fatalf("element %s has no %s attribute", e.Name, name)
	}
	return v
}

func TestPadsLayout(t *testing.T) {
	g := Pads(DefaultLayout, "#FFFFFF")
	if v, _ := g.Attr("id"); v != "midi-pads" {
		t.Errorf("group id = %q", v)
	}
	if len(g.Children) != 4 {
		t.Fatalf("pads = %d, want 4", len(g.Children))
	}
	want := [4][2]string{
		{"109", "260"}, {"208", "260"},
		{"109", "359"}, {"208", "359"},
	}
	for i, rect := range g.Children {
		if rect.Name != "rect" {
			t.Fatalf("pad %d is a %s", i, rect.Name)
		}
		if x := attrOf(t, rect, "x"); x != want[i][0] {
			t.Errorf("pad %d x = %s, want %s", i, x, want[i][0])
		}
		if y := attrOf(t, rect, "y"); y != want[i][1] {
			t.Errorf("pad %d y = %s, want %s", i, y, want[i][1])
		}
		if w := attrOf(t, rect, "width"); w != "85" {
			t.Errorf("pad %d width = %s", i, w)
		}
		if h := attrOf(t, rect, "height"); h != "85" {
			t.Errorf("pad %d height = %s", i, h)
		}
		if rx := attrOf(t, rect, "rx"); rx != "10" {
			t.Errorf("pad %d rx = %s", i, rx)
		}
		if ry := attrOf(t, rect, "ry"); ry != "10" {
			t.Errorf("pad %d ry = %s", i, ry)
		}
		if fill := attrOf(t, rect, "fill"); fill != "#FFFFFF" {
			t.Errorf("pad %d fill = %s", i, fill)
		}
	}
}

func TestPadsDeterministic(t *testing.T) {
	a := Pads(DefaultLayout, "black")
	b := Pads(DefaultLayout, "black")
	if !reflect.DeepEqual(a, b) {
		t.Error("two Pads calls with the same color differ")
	}
}

func TestSquarePortrait(t *testing.T) {
	doc := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 600"><path d="M0 0"/></svg>`)
	sq, err := Square(doc)
	if err != nil {
		t.Fatal(err)
	}
	if v := attrOf(t, sq.Root, "viewBox"); v != "0 0 600 600" {
		t.Errorf("viewBox = %q", v)
	}
	if w := attrOf(t, sq.Root, "width"); w != "600" {
		t.Errorf("width = %q", w)
	}
	if h := attrOf(t, sq.Root, "height"); h != "600" {
		t.Errorf("height = %q", h)
	}
	if len(sq.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1 wrapper group", len(sq.Root.Children))
	}
	wrapper := sq.Root.Children[0]
	if tr := attrOf(t, wrapper, "transform"); tr != "translate(100, 0)" {
		t.Errorf("transform = %q, want translate(100, 0)", tr)
	}
	if len(wrapper.Children) != 1 || wrapper.Children[0].Name != "path" {
		t.Error("original content not wrapped")
	}
}

func TestSquareLandscape(t *testing.T) {
	doc := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 400"/>`)
	sq, err := Square(doc)
	if err != nil {
		t.Fatal(err)
	}
	if v := attrOf(t, sq.Root, "viewBox"); v != "0 0 600 600" {
		t.Errorf("viewBox = %q", v)
	}
	if tr := attrOf(t, sq.Root.Children[0], "transform"); tr != "translate(0, 100)" {
		t.Errorf("transform = %q, want translate(0, 100)", tr)
	}
}

func TestSquareAlreadySquare(t *testing.T) {
	doc := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512"/>`)
	sq, err := Square(doc)
	if err != nil {
		t.Fatal(err)
	}
	if v := attrOf(t, sq.Root, "viewBox"); v != "0 0 512 512" {
		t.Errorf("viewBox = %q", v)
	}
	if tr := attrOf(t, sq.Root.Children[0], "transform"); tr != "translate(0, 0)" {
		t.Errorf("transform = %q, want translate(0, 0)", tr)
	}
}

func TestSquareMissingViewBox(t *testing.T) {
	doc := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	if _, err := Square(doc); err == nil {
		t.Error("expected error on missing viewBox")
	}
}

func TestSquareKeepsNamespaces(t *testing.T) {
	doc := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 10 10"/>`)
	sq, err := Square(doc)
	if err != nil {
		t.Fatal(err)
	}
	if ns := sq.Root.Namespaces(); len(ns) != 2 {
		t.Errorf("namespaces on squared root = %d, want 2", len(ns))
	}
}

const recolorSrc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<path id="a" fill="#6ad7e5"/>
<path id="b" fill="#6AD7E5"/>
<path id="c" fill="#FF0000"/>
<g><path id="d" fill="#6Ad7E5"/></g>
</svg>`

func TestRecolorFill(t *testing.T) {
	doc := mustRead(t, recolorSrc)
	out := RecolorFill(doc, "#6AD7E5", "#00ADD8")

	fills := map[string]string{}
	out.Root.Walk(func(e *svgdom.Element) {
		if id, ok := e.Attr("id"); ok {
			fills[id], _ = e.Attr("fill")
		}
	})
	for _, id := range []string{"a", "b", "d"} {
		if fills[id] != "#00ADD8" {
			t.Errorf("element %s fill = %q, want #00ADD8", id, fills[id])
		}
	}
	if fills["c"] != "#FF0000" {
		t.Errorf("unrelated fill rewritten: %q", fills["c"])
	}

	// the input document is left untouched
	if v, _ := doc.Root.Children[0].Attr("fill"); v != "#6ad7e5" {
		t.Errorf("input mutated: %q", v)
	}
}

const silhouetteSrc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<path id="painted" fill="#6AD7E5"/>
<path id="bare"/>
<path id="holes" fill="none" stroke="#123456"/>
<g id="grp" fill="none"><path id="nested"/><path id="nestedNone" fill="none"/></g>
</svg>`

func TestSilhouette(t *testing.T) {
	doc := mustRead(t, silhouetteSrc)
	out := Silhouette(doc, "white")

	if len(out.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1 body group", len(out.Root.Children))
	}

	got := map[string]*svgdom.Element{}
	out.Root.Walk(func(e *svgdom.Element) {
		if id, ok := e.Attr("id"); ok {
			got[id] = e
		}
	})

	for _, id := range []string{"painted", "bare", "nested"} {
		if v, _ := got[id].Attr("fill"); v != "white" {
			t.Errorf("%s fill = %q, want white", id, v)
		}
	}
	// fill="none" survives, but the stroke is recolored
	if v, _ := got["holes"].Attr("fill"); v != "none" {
		t.Errorf("holes fill = %q, want none", v)
	}
	if v, _ := got["holes"].Attr("stroke"); v != "white" {
		t.Errorf("holes stroke = %q, want white", v)
	}
	// each element is classified by its own attributes, not its parent's
	if v, _ := got["grp"].Attr("fill"); v != "none" {
		t.Errorf("grp fill = %q, want none", v)
	}
	if v, _ := got["nestedNone"].Attr("fill"); v != "none" {
		t.Errorf("nestedNone fill = %q, want none", v)
	}

	// the input document is left untouched
	if _, ok := doc.Root.Children[1].Attr("fill"); ok {
		t.Error("input mutated: bare path gained a fill")
	}
}

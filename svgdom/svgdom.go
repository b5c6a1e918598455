// Provides a mutable in-memory representation of SVG documents.
// Files are parsed into a plain element tree, preserving tags,
// attributes and nesting, which can then be edited and serialized
// back to disk. No SVG semantics are interpreted beyond the viewBox;
// painting is left to the raster backends.
package svgdom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespaces declared on the canonical artwork.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

var errInvalidDocument = errors.New("invalid svg xml document")

type (
	// Element is one node of the document tree: a tag with
	// its attributes in document order and its child elements.
	Element struct {
		Name     string // local tag name, without namespace prefix
		Attrs    []xml.Attr
		Children []*Element
		Text     string // non-whitespace character data, as in title or desc
	}

	// Document holds the parsed tree. The root is the single
	// viewBox-bearing svg element, carrying the source namespace
	// declarations among its attributes.
	Document struct {
		Root *Element
	}
)

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name && a.Name.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value
// or appending the attribute if absent.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name.Local == name && a.Name.Space != "xmlns" {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// FillState classifies the fill attribute of an element.
// The distinction between an absent fill (which SVG paints black)
// and an explicit "none" drives the silhouette transform.
type FillState uint8

const (
	FillUnset   FillState = iota // no fill attribute: painted with the default
	FillNone                     // fill="none": not painted
	FillPainted                  // any other fill value
)

// FillState returns the fill classification of the element,
// from its own attributes only (no inheritance).
func (e *Element) FillState() FillState {
	v, ok := e.Attr("fill")
	switch {
	case !ok:
		return FillUnset
	case v == "none":
		return FillNone
	default:
		return FillPainted
	}
}

// Clone returns a deep copy of the element, so that a transform
// can edit the copy without aliasing the source tree.
func (e *Element) Clone() *Element {
	c := &Element{Name: e.Name, Text: e.Text}
	c.Attrs = append([]xml.Attr(nil), e.Attrs...)
	c.Children = make([]*Element, len(e.Children))
	for i, child := range e.Children {
		c.Children[i] = child.Clone()
	}
	return c
}

// Walk calls fn on the element and then on every descendant, in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Namespaces returns the xmlns declarations carried by the element.
func (e *Element) Namespaces() []xml.Attr {
	var out []xml.Attr
	for _, a := range e.Attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone()}
}

// ReadDocument reads an SVG document from the given io.Reader.
// It errors on empty input or on malformed XML; unknown elements
// are kept verbatim since the tree is not interpreted.
func ReadDocument(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &Element{Name: se.Name.Local, Attrs: copyAttrs(se.Attr)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if s := strings.TrimSpace(string(se)); s != "" && len(stack) > 0 {
				stack[len(stack)-1].Text += s
			}
		}
	}
	if root == nil {
		return nil, errInvalidDocument
	}
	return &Document{Root: root}, nil
}

// ReadDocumentFile reads the SVG document from the named file.
func ReadDocumentFile(path string) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadDocument(fin)
}

// copyAttrs detaches the attribute slice from the decoder buffer.
func copyAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// WriteTo serializes the document, always emitting the XML
// declaration header with UTF-8 encoding. The output is compact:
// no indentation is added between elements.
func (d *Document) WriteTo(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeElement(&buf, d.Root)
	buf.WriteString("\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile serializes the document to the named file,
// overwriting any existing content. Best effort: no atomic rename.
func (d *Document) WriteFile(path string) error {
	fout, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.WriteTo(fout); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}

func writeElement(buf *bytes.Buffer, e *Element) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(attrName(a.Name))
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		xml.EscapeText(buf, []byte(e.Text))
	}
	for _, child := range e.Children {
		writeElement(buf, child)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

// attrName renders an attribute name with its conventional prefix.
// The decoder resolves prefixes to namespace URLs; only the two
// namespaces of the canonical artwork plus xml: are expected.
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case XLinkNamespace:
		return "xlink:" + n.Local
	case xmlNamespace:
		return "xml:" + n.Local
	default:
		return n.Local
	}
}

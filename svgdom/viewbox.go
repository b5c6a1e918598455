package svgdom

import (
	"errors"
	"strconv"
	"strings"
)

var errParamMismatch = errors.New("param mismatch")

// ViewBox is the parsed form of the root viewBox attribute.
type ViewBox struct {
	MinX, MinY, W, H float64
}

// ParseViewBox parses a viewBox value, a list of exactly four
// numbers separated by commas or spaces.
func ParseViewBox(v string) (ViewBox, error) {
	fields := splitOnCommaOrSpace(v)
	if len(fields) != 4 {
		return ViewBox{}, errParamMismatch
	}
	var out [4]float64
	for i, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, err
		}
		out[i] = p
	}
	return ViewBox{MinX: out[0], MinY: out[1], W: out[2], H: out[3]}, nil
}

func (v ViewBox) String() string {
	return FormatNumber(v.MinX) + " " + FormatNumber(v.MinY) + " " +
		FormatNumber(v.W) + " " + FormatNumber(v.H)
}

// ViewBox parses the viewBox attribute of the document root.
func (d *Document) ViewBox() (ViewBox, error) {
	v, ok := d.Root.Attr("viewBox")
	if !ok {
		return ViewBox{}, errors.New("missing viewBox attribute")
	}
	return ParseViewBox(v)
}

// FormatNumber renders a coordinate the way it is written in
// attribute values: shortest decimal form, no exponent.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

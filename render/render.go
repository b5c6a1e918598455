// Provides the raster backends used to turn the generated SVG
// documents into bitmaps: an external ImageMagick engine and an
// in-process fallback built on oksvg/rasterx.
package render

// Engine abstracts the two image operations the pipeline needs,
// so it can be exercised against a fake in tests.
type Engine interface {
	// Rasterize converts the SVG file at svgPath to a PNG at pngPath,
	// over a transparent background.
	Rasterize(svgPath, pngPath string) error

	// Composite subtracts the opaque regions of the mask bitmap from
	// the base bitmap (destination-out) and writes the result to outPath.
	Composite(basePath, maskPath, outPath string) error
}

// Detect returns the external ImageMagick engine when the magick
// binary is on PATH, and the in-process engine otherwise.
func Detect() Engine {
	if eng, err := NewExec(); err == nil {
		return eng
	}
	return Raster{Size: 512}
}

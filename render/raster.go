package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// Raster is the in-process engine: it rasterizes with oksvg/rasterx
// and composites with a destination-out alpha pass, requiring no
// external tool.
type Raster struct {
	// Size is the pixel side the longer viewBox axis is scaled to.
	// Zero keeps the intrinsic viewBox size, like the external engine.
	Size int
}

func (r Raster) Rasterize(svgPath, pngPath string) error {
	icon, err := oksvg.ReadIcon(svgPath, oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("rasterize %s: %w", svgPath, err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if r.Size > 0 {
		scale := float64(r.Size) / math.Max(icon.ViewBox.W, icon.ViewBox.H)
		w = int(math.Round(icon.ViewBox.W * scale))
		h = int(math.Round(icon.ViewBox.H * scale))
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("rasterize %s: empty viewBox", svgPath)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1)

	return writePNG(pngPath, img)
}

func (r Raster) Composite(basePath, maskPath, outPath string) error {
	base, err := readPNG(basePath)
	if err != nil {
		return fmt.Errorf("composite %s: %w", outPath, err)
	}
	mask, err := readPNG(maskPath)
	if err != nil {
		return fmt.Errorf("composite %s: %w", outPath, err)
	}
	dst := asRGBA(base)
	if !mask.Bounds().Eq(dst.Bounds()) {
		// the mask layer is expected to share the base canvas;
		// rescale it when the two engines disagree on pixel size
		scaled := image.NewRGBA(dst.Bounds())
		xdraw.ApproxBiLinear.Scale(scaled, dst.Bounds(), mask, mask.Bounds(), xdraw.Src, nil)
		mask = scaled
	}
	destinationOut(dst, mask)
	return writePNG(outPath, dst)
}

// destinationOut erases dst wherever the mask is opaque:
// every premultiplied channel is scaled by one minus the mask alpha.
func destinationOut(dst *image.RGBA, mask image.Image) {
	b := dst.Bounds()
	mb := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, ma := mask.At(mb.Min.X+x, mb.Min.Y+y).RGBA()
			if ma == 0 {
				continue
			}
			keep := 0xffff - ma
			i := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8(uint32(dst.Pix[i+c]) * keep / 0xffff)
			}
		}
	}
}

func asRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func readPNG(path string) (image.Image, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return png.Decode(fin)
}

func writePNG(path string, img image.Image) error {
	fout, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(fout, img); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}

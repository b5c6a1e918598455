// Implements the icon build pipeline: from one canonical vector
// artwork it derives the recolored app icon and the light and dark
// tray icons with their pad cutouts, rasterizes them and removes the
// intermediate files. The stages form a fixed sequence with no
// branching; a failing raster step is logged and skipped so one
// broken asset does not block the rest of the run.
package icongen

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/jackmordaunt/icns/v2"

	"github.com/benoitkugler/icongen/render"
	"github.com/benoitkugler/icongen/svgdom"
	"github.com/benoitkugler/icongen/svgedit"
)

// Config groups the input, output and work paths of a run,
// plus the geometry and palette of the generated shapes.
type Config struct {
	Canonical string // canonical SVG source all outputs derive from

	AppIcon   string // final app icon PNG
	TrayLight string // final tray icon PNG, light mode
	TrayDark  string // final tray icon PNG, dark mode
	Icns      string // optional .icns container; empty disables

	WorkDir string // where intermediate SVG and PNG files are written

	Layout  svgedit.Layout
	Palette svgedit.Palette
}

// DefaultConfig mirrors the layout of the shipped assets directory.
var DefaultConfig = Config{
	Canonical: "gopher_canonical.svg",
	AppIcon:   filepath.Join("assets", "app_icon.png"),
	TrayLight: filepath.Join("assets", "tray_icon.png"),
	TrayDark:  filepath.Join("assets", "tray_icon_black.png"),
	Icns:      filepath.Join("assets", "app_icon.icns"),
	WorkDir:   ".",
	Layout:    svgedit.DefaultLayout,
	Palette:   svgedit.DefaultPalette,
}

// Logf is the logging callback of a run; log.Printf satisfies it.
type Logf func(format string, args ...interface{})

// names of the intermediate files, relative to WorkDir
const (
	appIconSVG  = "app_icon.svg"
	trayBodySVG = "tray_body.svg"
	trayBodyPNG = "tray_body.png"
	trayDarkSVG = "tray_body_black.svg"
	trayDarkPNG = "tray_body_black.png"
	trayPadsSVG = "tray_pads.svg"
	trayPadsPNG = "tray_pads.png"
)

type builder struct {
	cfg    Config
	engine render.Engine
	logf   Logf
	soft   int // raster or composite steps that failed and were skipped
	made   int // assets confirmed on disk
}

// Build runs the whole pipeline: app icon, tray layers, raster,
// composite, icns, cleanup. Hard failures (unreadable source,
// unwritable documents) abort and are returned; engine failures are
// logged through logf and skipped, and their count is returned so a
// caller can tell a clean run from one with stale or missing assets.
func Build(cfg Config, engine render.Engine, logf Logf) (softFailures int, err error) {
	if logf == nil {
		logf = log.Printf
	}
	b := &builder{cfg: cfg, engine: engine, logf: logf}

	for _, out := range []string{cfg.AppIcon, cfg.TrayLight, cfg.TrayDark, cfg.Icns} {
		if out == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return b.soft, err
		}
	}

	if err := b.appIcon(); err != nil {
		return b.soft, err
	}
	if err := b.trayLayers(); err != nil {
		return b.soft, err
	}
	b.renderAll()
	b.compositeAll()
	b.encodeIcns()
	b.cleanup()

	b.logf("icon generation complete: %d assets, %d failed steps", b.made, b.soft)
	return b.soft, nil
}

func (b *builder) work(name string) string {
	return filepath.Join(b.cfg.WorkDir, name)
}

func (b *builder) load() (*svgdom.Document, error) {
	// always re-read the canonical source so variants stay independent
	return svgdom.ReadDocumentFile(b.cfg.Canonical)
}

func (b *builder) writeSquared(doc *svgdom.Document, path string) error {
	squared, err := svgedit.Square(doc)
	if err != nil {
		return fmt.Errorf("squaring %s: %w", path, err)
	}
	if err := squared.WriteFile(path); err != nil {
		return err
	}
	b.logf("created %s", path)
	return nil
}

// appIcon derives the app icon SVG: official Go blue substituted for
// the artwork blue, white pads overlaid, canvas squared.
func (b *builder) appIcon() error {
	doc, err := b.load()
	if err != nil {
		return err
	}
	out := svgedit.RecolorFill(doc, b.cfg.Palette.SourceBlue, b.cfg.Palette.GoBlue)
	out.Root.Children = append(out.Root.Children, svgedit.Pads(b.cfg.Layout, b.cfg.Palette.PadFill))
	return b.writeSquared(out, b.work(appIconSVG))
}

// trayLayers derives the three tray layer SVGs: light and dark body
// silhouettes, and the pad mask used to cut them out.
func (b *builder) trayLayers() error {
	for _, layer := range []struct{ name, color string }{
		{trayBodySVG, b.cfg.Palette.TrayLight},
		{trayDarkSVG, b.cfg.Palette.TrayDark},
	} {
		doc, err := b.load()
		if err != nil {
			return err
		}
		if err := b.writeSquared(svgedit.Silhouette(doc, layer.color), b.work(layer.name)); err != nil {
			return err
		}
	}

	doc, err := b.load()
	if err != nil {
		return err
	}
	// same root and canvas as the bodies so the cutout stays aligned
	doc.Root.Children = []*svgdom.Element{svgedit.Pads(b.cfg.Layout, b.cfg.Palette.CutoutFill)}
	return b.writeSquared(doc, b.work(trayPadsSVG))
}

func (b *builder) renderAll() {
	for _, r := range []struct{ svg, png string }{
		{b.work(appIconSVG), b.cfg.AppIcon},
		{b.work(trayBodySVG), b.work(trayBodyPNG)},
		{b.work(trayDarkSVG), b.work(trayDarkPNG)},
		{b.work(trayPadsSVG), b.work(trayPadsPNG)},
	} {
		if err := b.engine.Rasterize(r.svg, r.png); err != nil {
			b.logf("error rendering %s: %v", r.svg, err)
			b.soft++
			continue
		}
		b.logf("rendered %s", r.png)
		b.made++
	}
}

func (b *builder) compositeAll() {
	for _, c := range []struct{ body, out string }{
		{b.work(trayBodyPNG), b.cfg.TrayLight},
		{b.work(trayDarkPNG), b.cfg.TrayDark},
	} {
		if err := b.engine.Composite(c.body, b.work(trayPadsPNG), c.out); err != nil {
			b.logf("error compositing %s: %v", c.out, err)
			b.soft++
			continue
		}
		b.logf("composited %s", c.out)
		b.made++
	}
}

// encodeIcns wraps the rendered app icon PNG in an icns container.
// It runs after the raster stage and follows the same soft-failure
// policy, since a failed render leaves it nothing to read.
func (b *builder) encodeIcns() {
	if b.cfg.Icns == "" {
		return
	}
	err := func() error {
		fin, err := os.Open(b.cfg.AppIcon)
		if err != nil {
			return err
		}
		defer fin.Close()
		img, err := png.Decode(fin)
		if err != nil {
			return err
		}
		fout, err := os.Create(b.cfg.Icns)
		if err != nil {
			return err
		}
		if err := icns.Encode(fout, img); err != nil {
			fout.Close()
			return err
		}
		return fout.Close()
	}()
	if err != nil {
		b.logf("error encoding %s: %v", b.cfg.Icns, err)
		b.soft++
		return
	}
	b.logf("encoded %s", b.cfg.Icns)
	b.made++
}

func (b *builder) cleanup() {
	Cleanup([]string{
		b.work(appIconSVG),
		b.work(trayBodySVG), b.work(trayBodyPNG),
		b.work(trayDarkSVG), b.work(trayDarkPNG),
		b.work(trayPadsSVG), b.work(trayPadsPNG),
	}, b.logf)
}

// Cleanup removes each listed file if present, logging every removal.
// Absent files are skipped silently; cleanup never fails the run.
func Cleanup(paths []string, logf Logf) {
	if logf == nil {
		logf = log.Printf
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			continue
		}
		logf("removed temp file %s", p)
	}
}

package render

import (
	"fmt"
	"os/exec"
)

// Exec renders by invoking ImageMagick as a subprocess. Each call
// blocks until the process exits; the handoff between operations is
// the filesystem, never in-memory pipes.
type Exec struct {
	bin string
}

// NewExec locates the magick binary on PATH.
func NewExec() (*Exec, error) {
	bin, err := exec.LookPath("magick")
	if err != nil {
		return nil, fmt.Errorf("magick not found on PATH: %w", err)
	}
	return &Exec{bin: bin}, nil
}

func (e *Exec) Rasterize(svgPath, pngPath string) error {
	cmd := exec.Command(e.bin, "-background", "none", svgPath, pngPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("magick rasterize %s: %w\n%s", svgPath, err, out)
	}
	return nil
}

func (e *Exec) Composite(basePath, maskPath, outPath string) error {
	cmd := exec.Command(e.bin, basePath, maskPath, "-compose", "DstOut", "-composite", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("magick composite %s: %w\n%s", outPath, err, out)
	}
	return nil
}

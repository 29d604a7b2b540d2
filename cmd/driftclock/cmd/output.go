package cmd

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/engine"
	xdraw "golang.org/x/image/draw"
)

// loadStyleFile reads an explicit style file. Unlike a style referenced by
// driftclock.yaml, a missing file is an error.
func loadStyleFile(path string) (clockface.Style, error) {
	if _, err := os.Stat(path); err != nil {
		return clockface.Style{}, fmt.Errorf("style file: %w", err)
	}
	return clockface.LoadStyle(path)
}

// scaleImage resamples img by factor. A factor of 1 returns img unchanged.
func scaleImage(img image.Image, factor float64) (image.Image, error) {
	if factor == 1 {
		return img, nil
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("invalid scale %v", factor)
	}
	b := img.Bounds()
	w := max(int(math.Round(float64(b.Dx())*factor)), 1)
	h := max(int(math.Round(float64(b.Dy())*factor)), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}

// writePNG encodes img to path, creating parent directories.
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// pngSequence writes each presented frame as frame-NNNN.png under dir.
type pngSequence struct {
	dir   string
	scale float64
	// onFrame is called after each frame is written.
	onFrame func(written int)

	written int
}

func (p *pngSequence) Present(frame engine.FrameSnapshot, img *image.RGBA) error {
	scaled, err := scaleImage(img, p.scale)
	if err != nil {
		return err
	}
	path := filepath.Join(p.dir, fmt.Sprintf("frame-%04d.png", frame.FrameID))
	if err := writePNG(path, scaled); err != nil {
		return err
	}
	p.written++
	if p.onFrame != nil {
		p.onFrame(p.written)
	}
	return nil
}

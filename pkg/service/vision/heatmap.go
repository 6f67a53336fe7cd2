package vision

import (
	"bytes"
	"image"
	"image/png"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/draw"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// Intensities converts raw attention into overlay intensity per cell:
// min/max normalization, contrast stretch to [StretchMin,StretchMax] with
// clamping, then inversion. A flat grid normalizes to 1 and therefore
// renders fully transparent.
func Intensities(grid model.AttentionGrid) []float64 {
	out := make([]float64, len(grid.Cells))
	if grid.IsEmpty() {
		return out
	}

	lo, hi := float64(grid.Cells[0]), float64(grid.Cells[0])
	for _, c := range grid.Cells[1:] {
		lo = min(lo, float64(c))
		hi = max(hi, float64(c))
	}

	for i, c := range grid.Cells {
		v := 1.0
		if hi > lo {
			v = (float64(c) - lo) / (hi - lo)
		}
		v = clamp01((v - StretchMin) / (StretchMax - StretchMin))
		out[i] = 1 - v
	}
	return out
}

// GridImage renders the grid at one pixel per cell with jet colors and
// intensity-driven alpha.
func GridImage(grid model.AttentionGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Size, grid.Size))
	for i, v := range Intensities(grid) {
		c := Jet(v)
		c.A = Alpha(v)
		img.SetNRGBA(i%grid.Size, i/grid.Size, c)
	}
	return img
}

// RenderOverlay upscales the grid to the size of src with Catmull-Rom
// (bicubic) interpolation and composites it over src.
func RenderOverlay(src image.Image, grid model.AttentionGrid) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	if grid.IsEmpty() {
		return out
	}

	heat := GridImage(grid)
	draw.CatmullRom.Scale(out, out.Bounds(), heat, heat.Bounds(), draw.Over, nil)
	return out
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, goerr.Wrap(err, "failed to encode heatmap")
	}
	return buf.Bytes(), nil
}

package render

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleSnapshot resamples src to width×height using a high-quality
// Catmull-Rom filter. A transition's captured snapshot is taken at the
// surface's dimensions at request time; if the window is resized while the
// transition is still running, the snapshot must be rescaled to the new
// surface size before it can be composited against the live content.
func ScaleSnapshot(src *image.RGBA, width, height int) *image.RGBA {
	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

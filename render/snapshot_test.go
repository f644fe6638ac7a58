package render_test

import (
	"image"
	"image/color"
	"testing"

	"neomacs.dev/display/render"
)

func TestScaleSnapshotNoopWhenSizeUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	got := render.ScaleSnapshot(src, 4, 4)
	if got != src {
		t.Error("ScaleSnapshot should return the same image when dimensions match")
	}
}

func TestScaleSnapshotResizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	got := render.ScaleSnapshot(src, 8, 8)
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 8 {
		t.Fatalf("scaled bounds = %v, want 8x8", got.Bounds())
	}
	r, _, _, a := got.At(4, 4).RGBA()
	if r == 0 || a == 0 {
		t.Error("scaled image should retain non-zero red content from the source")
	}
}

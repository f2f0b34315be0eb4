package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 1, Offset: image.Pt(8, 6), Opacity: 0.5}
	res := ApplyShadow(img, opts)
	if res.Image == nil {
		t.Fatal("expected output image")
	}
	if want := image.Rect(0, 0, 19, 17); !res.Image.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", res.Image.Bounds(), want)
	}
	if res.Offset != (image.Point{}) {
		t.Fatalf("drawing moved to %v", res.Offset)
	}
	if res.Image.RGBAAt(13, 11).A == 0 {
		t.Fatal("expected shadow alpha below the pixel")
	}
	if got := res.Image.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("drawing pixel changed: %+v", got)
	}
}

func TestApplyShadowNegativeOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{A: 255})
	res := ApplyShadow(img, ShadowOptions{Radius: 1, Offset: image.Pt(-3, -2), Opacity: 1})
	if res.Offset != image.Pt(4, 3) {
		t.Fatalf("offset %v", res.Offset)
	}
	if res.Image.Bounds().Min != (image.Point{}) {
		t.Fatalf("result not zero based: %v", res.Image.Bounds())
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	res := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if res.Image != img {
		t.Fatal("expected the input image back")
	}
}

func TestBlurGraySpreads(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 5, 5))
	g.SetGray(2, 2, color.Gray{Y: 225})
	out := blurGray(g, 1)
	if got := out.GrayAt(2, 2).Y; got != 25 {
		t.Fatalf("centre = %d, want 25", got)
	}
	if out.GrayAt(1, 1).Y == 0 || out.GrayAt(3, 3).Y == 0 {
		t.Fatal("blur did not reach diagonal neighbours")
	}
	if out.GrayAt(0, 0).Y != 0 {
		t.Fatal("blur reached too far")
	}
}

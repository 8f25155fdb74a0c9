package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailScalesDown(t *testing.T) {
	t.Parallel()
	src := encodePNG(t, 400, 300, color.RGBA{R: 30, G: 32, B: 40, A: 255})
	out, err := Thumbnail(src, 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 75 {
		t.Fatalf("thumbnail size = %dx%d, want 100x75", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(50, 37).RGBA()
	if absDiff(r>>8, 30) > 2 || absDiff(g>>8, 32) > 2 || absDiff(b>>8, 40) > 2 {
		t.Fatalf("color drifted to %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	t.Parallel()
	src := encodePNG(t, 80, 20, color.White)
	for _, w := range []int{0, 80, 200} {
		out, err := Thumbnail(src, w)
		if err != nil {
			t.Fatalf("Thumbnail(%d): %v", w, err)
		}
		if !bytes.Equal(out, src) {
			t.Fatalf("Thumbnail(%d) re-encoded an image that fits", w)
		}
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	t.Parallel()
	if _, err := Thumbnail([]byte("not a png"), 100); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClampToWidthMinimumHeight(t *testing.T) {
	t.Parallel()
	img := image.NewRGBA(image.Rect(0, 0, 1000, 1))
	_, w, h := clampToWidth(img, 10)
	if w != 10 || h != 1 {
		t.Fatalf("clampToWidth = %dx%d, want 10x1", w, h)
	}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

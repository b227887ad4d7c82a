package image_test

import (
	"bytes"
	"encoding/base64"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"ephemera/internal/image"
)

const dataURLPrefix = "data:image/jpeg;base64,"

// pngBytes renders a w×h gradient PNG in memory.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// decodeDataURL parses the Compress output back into an image.
func decodeDataURL(t *testing.T, s string) stdimage.Image {
	t.Helper()
	if !strings.HasPrefix(s, dataURLPrefix) {
		t.Fatalf("missing data URL prefix: %.40s", s)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, dataURLPrefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func TestCompress_DownscalesLargeImages(t *testing.T) {
	out, err := image.Compress(bytes.NewReader(pngBytes(t, 1600, 900)))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	img := decodeDataURL(t, out)
	b := img.Bounds()
	if b.Dx() != image.MaxDimension {
		t.Fatalf("width: got %d, want %d", b.Dx(), image.MaxDimension)
	}
	if b.Dy() != 450 {
		t.Fatalf("height: got %d, want 450 (aspect preserved)", b.Dy())
	}
}

func TestCompress_TallImage(t *testing.T) {
	out, err := image.Compress(bytes.NewReader(pngBytes(t, 300, 2400)))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	b := decodeDataURL(t, out).Bounds()
	if b.Dy() != image.MaxDimension || b.Dx() != 100 {
		t.Fatalf("got %dx%d, want 100x%d", b.Dx(), b.Dy(), image.MaxDimension)
	}
}

func TestCompress_SmallImageKeepsSize(t *testing.T) {
	out, err := image.Compress(bytes.NewReader(pngBytes(t, 320, 200)))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	b := decodeDataURL(t, out).Bounds()
	if b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("small image rescaled: %dx%d", b.Dx(), b.Dy())
	}
}

func TestCompress_RejectsGarbage(t *testing.T) {
	if _, err := image.Compress(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

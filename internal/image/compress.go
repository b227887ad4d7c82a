package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the longest side of a compressed attachment.
	MaxDimension = 800
	// Quality is the fixed JPEG re-encode quality.
	Quality = 80
)

// Compress decodes an attachment, scales its longest side down to
// MaxDimension if needed, and returns it as a base64 JPEG data URL ready
// for an image envelope.
func Compress(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("image: decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > MaxDimension || h > MaxDimension {
		nw, nh := fit(w, h)
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("image: encode: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fit scales (w, h) so the longest side equals MaxDimension, preserving
// aspect ratio, never returning zero.
func fit(w, h int) (int, int) {
	if w >= h {
		nh := h * MaxDimension / w
		if nh < 1 {
			nh = 1
		}
		return MaxDimension, nh
	}
	nw := w * MaxDimension / h
	if nw < 1 {
		nw = 1
	}
	return nw, MaxDimension
}

// Package testutil writes small card images for tests.
package testutil

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Card returns a w×h image filled with c.
func Card(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WritePNG writes a w×h solid PNG to path.
func WritePNG(t testing.TB, path string, w, h int, c color.Color) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, Card(w, h, c)); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteJPEG writes a w×h solid JPEG to path.
func WriteJPEG(t testing.TB, path string, w, h int, c color.Color) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, Card(w, h, c), nil); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteFile writes raw bytes to path.
func WriteFile(t testing.TB, path string, data string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Deck creates dir and fills it with n PNG cards named card-000.png,
// card-001.png, ... It returns dir.
func Deck(t testing.TB, dir string, n int) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		shade := uint8(40 + (i*20)%200)
		WritePNG(t, filepath.Join(dir, fmt.Sprintf("card-%03d.png", i)), 6, 8, color.NRGBA{R: shade, G: 80, B: 160, A: 255})
	}
	return dir
}

package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestFillPaletteClampsIndex(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{0, 9}, palette)
	if buf[0] != 1 || buf[3] != 255 {
		t.Fatalf("first pixel %v", buf[:4])
	}
	if buf[5] != 2 {
		t.Fatalf("out-of-range index should clamp to last entry, got %v", buf[4:])
	}

	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, expected transparent black", i, b)
		}
	}
}

func TestWritePNGScales(t *testing.T) {
	palette := []color.RGBA{{A: 255}, {R: 255, A: 255}}
	var out bytes.Buffer
	if err := WritePNG(&out, 2, 1, []uint8{0, 1}, palette, 3); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("expected 6x3 image, got %v", b)
	}
	r, _, _, _ := img.At(5, 2).RGBA()
	if r>>8 != 255 {
		t.Fatalf("expected red pixel in scaled right half, got r=%d", r>>8)
	}
	r, _, _, _ = img.At(2, 0).RGBA()
	if r != 0 {
		t.Fatalf("expected black pixel in scaled left half, got r=%d", r)
	}
}

func TestQuantize(t *testing.T) {
	dst := make([]uint8, 5)
	Quantize(dst, []float64{10, 15, 20, 40}, 10, 20)
	want := []uint8{0, 128, 255, 255, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Quantize = %v, expected %v", dst, want)
		}
	}
}

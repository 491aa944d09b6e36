package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image builds an RGBA image of w*h palette-indexed cells, each scaled to a
// scale*scale block.
func Image(w, h int, cells []uint8, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(cells) == w*h {
		fillPaletteRGBA(base.Pix, cells, palette)
	}
	if scale == 1 {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			src := base.PixOffset(x/scale, y/scale)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+4], base.Pix[src:src+4])
		}
	}
	return out
}

// WritePNG encodes the palette-indexed cells as a PNG image.
func WritePNG(dst io.Writer, w, h int, cells []uint8, palette []color.RGBA, scale int) error {
	return png.Encode(dst, Image(w, h, cells, palette, scale))
}

// Quantize maps heads onto palette indices in dst, clamping to [lo, hi].
func Quantize(dst []uint8, heads []float64, lo, hi float64) {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	for i := range dst {
		if i >= len(heads) {
			dst[i] = 0
			continue
		}
		t := (heads[i] - lo) / span
		if math.IsNaN(t) || t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		dst[i] = uint8(math.Round(t * 255))
	}
}

package render

import (
	"image"

	"forestfire/internal/core"
)

// FillPalette converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values
// past the end of the palette use its last entry.
func FillPalette(buf []byte, cells []uint8, palette []core.Color) {
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

// Image rasterizes a w×h cell grid into an RGBA image, drawing each cell as a
// scale×scale block. A positive gap leaves that many pixels of grid line
// (the gutter color) between blocks.
func Image(cells []uint8, w, h, scale, gap int, palette []core.Color, gutter core.Color) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	if gap < 0 || gap >= scale {
		gap = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	if len(cells) != w*h {
		return img
	}
	px := make([]byte, 4*len(cells))
	FillPalette(px, cells, palette)

	for y := 0; y < h*scale; y++ {
		cy, iy := y/scale, y%scale
		row := img.Pix[y*img.Stride : y*img.Stride+w*scale*4]
		for x := 0; x < w*scale; x++ {
			cx, ix := x/scale, x%scale
			dst := row[x*4 : x*4+4]
			if ix < gap || iy < gap {
				dst[0], dst[1], dst[2], dst[3] = gutter.R, gutter.G, gutter.B, gutter.A
				continue
			}
			copy(dst, px[(cy*w+cx)*4:(cy*w+cx)*4+4])
		}
	}
	return img
}

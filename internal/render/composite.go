// Package render rasterizes stroke segments into coverage masks and
// composites them onto RGBA rasters.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Over paints col through mask onto dst using source-over blending.
func Over(dst *image.RGBA, mask *image.Alpha, col color.Color) {
	if dst == nil || mask == nil {
		return
	}
	r := mask.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, mask, r.Min, draw.Over)
}

// DestinationOut removes dst coverage wherever mask is set. A fully covered
// mask pixel leaves a fully transparent dst pixel regardless of its colour.
func DestinationOut(dst *image.RGBA, mask *image.Alpha) {
	if dst == nil || mask == nil {
		return
	}
	r := mask.Bounds().Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := uint32(mask.Pix[mask.PixOffset(x, y)])
			if a == 0 {
				continue
			}
			keep := 255 - a
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			for c := range px {
				px[c] = uint8((uint32(px[c])*keep + 127) / 255)
			}
		}
	}
}

// Composite draws seg onto dst. When erase is set the segment removes pixels,
// otherwise it paints col.
func Composite(dst *image.RGBA, seg Segment, col color.Color, erase bool) image.Rectangle {
	mask, ok := seg.Mask(dst.Bounds())
	if !ok {
		return image.Rectangle{}
	}
	if erase {
		DestinationOut(dst, mask)
	} else {
		Over(dst, mask, col)
	}
	return mask.Bounds()
}

package imaging

import (
	"fmt"
	"image"
)

// Crop returns the view of r covering rect. Unlike Raster.View, a region
// that is empty or not fully inside r is an error rather than clipped.
// No pixels are copied.
func Crop(r Raster, rect image.Rectangle) (Raster, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	bounds := image.Rect(0, 0, r.Width(), r.Height())
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return r.View(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()), nil
}

// ColorBounds returns the smallest rectangle containing every pixel of r
// within tolerance of c. ok is false when no pixel matches.
func ColorBounds(r Raster, c RGBAColor, tolerance uint8) (bounds image.Rectangle, ok bool) {
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if !EqualWithTolerance(c, r.Pixel(x, y), tolerance) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !ok {
				bounds, ok = px, true
				continue
			}
			bounds = bounds.Union(px)
		}
	}
	return bounds, ok
}

// CropToColor trims r to the bounding box of its c-colored pixels, so a
// template shape touches x = 0 and y = 0. When no pixel matches, r is
// returned unchanged with ok false.
func CropToColor(r Raster, c RGBAColor, tolerance uint8) (cropped Raster, ok bool) {
	rect, ok := ColorBounds(r, c, tolerance)
	if !ok {
		return r, false
	}
	cropped, err := Crop(r, rect)
	if err != nil {
		// Unreachable: rect lies within r.
		return r, false
	}
	return cropped, true
}

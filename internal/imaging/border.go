package imaging

// ViewWithBorder returns a view of the window (offsetX, offsetY, width,
// height) extended by one pixel of halo on every side, clipped to r.
//
// The halo never wraps and no pixels are synthesized: at an image edge the
// halo on that side simply disappears. shiftX and shiftY report how much halo
// is present on the left and top sides (1, or 0 when the window touches that
// edge). Window-relative coordinate (x, y) is found at (x+shiftX, y+shiftY)
// in the returned view; neighbours at -1 or at width/height fall outside the
// view when no halo exists there.
func ViewWithBorder(r Raster, offsetX, offsetY, width, height int) (view Raster, shiftX, shiftY int) {
	startX, shiftX := haloStart(offsetX)
	startY, shiftY := haloStart(offsetY)

	endX := min(offsetX+width+1, r.Width())
	endY := min(offsetY+height+1, r.Height())

	return r.View(startX, startY, max(endX-startX, 0), max(endY-startY, 0)), shiftX, shiftY
}

func haloStart(offset int) (start, shift int) {
	if offset <= 0 {
		return 0, 0
	}
	return offset - 1, 1
}

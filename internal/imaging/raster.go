package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Raster is a read-only 2D grid of pixels.
//
// Coordinates are 0-based and relative to the raster's own top-left corner,
// including for views returned by View. Pixel is only defined for
// 0 <= x < Width() and 0 <= y < Height(); use Lookup for checked access.
type Raster interface {
	Width() int
	Height() int
	Pixel(x, y int) RGBAColor
	// View returns the sub-rectangle (x, y, w, h), clipped to the raster.
	View(x, y, w, h int) Raster
}

// Lookup returns the pixel at (x, y) and true, or false when (x, y) lies
// outside r.
func Lookup(r Raster, x, y int) (RGBAColor, bool) {
	if x < 0 || y < 0 || x >= r.Width() || y >= r.Height() {
		return RGBAColor{}, false
	}
	return r.Pixel(x, y), true
}

// Bitmap is a Raster backed by a non-premultiplied RGBA buffer.
//
// Views share the parent's pixel buffer. A Bitmap is safe for concurrent
// reads; SetPixel must not race with readers.
type Bitmap struct {
	pix  *image.NRGBA
	rect image.Rectangle // window into pix, in pix coordinates
}

// NewBitmap copies img into a new Bitmap whose origin is (0, 0).
//
// Any color model is accepted. Premultiplied sources are converted to
// straight alpha, so fully transparent pixels read back as zero RGB.
func NewBitmap(img image.Image) *Bitmap {
	pix := imaging.Clone(img)
	return &Bitmap{pix: pix, rect: pix.Bounds()}
}

// NewBlankBitmap creates a width x height Bitmap filled with fill.
func NewBlankBitmap(width, height int, fill RGBAColor) *Bitmap {
	pix := imaging.New(width, height, fill.NRGBA())
	return &Bitmap{pix: pix, rect: pix.Bounds()}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.rect.Dx() }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.rect.Dy() }

// Pixel returns the color at (x, y). The caller must ensure the coordinates
// are inside the bitmap.
func (b *Bitmap) Pixel(x, y int) RGBAColor {
	i := b.pix.PixOffset(b.rect.Min.X+x, b.rect.Min.Y+y)
	s := b.pix.Pix[i : i+4 : i+4]
	return RGBAColor{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// View returns a Bitmap sharing b's pixels, covering (x, y, w, h) clipped
// to b.
func (b *Bitmap) View(x, y, w, h int) Raster {
	r := image.Rect(x, y, x+w, y+h).Add(b.rect.Min).Intersect(b.rect)
	return &Bitmap{pix: b.pix, rect: r}
}

// SetPixel sets the color at (x, y). Out-of-range writes are ignored.
func (b *Bitmap) SetPixel(x, y int, c RGBAColor) {
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
		return
	}
	b.pix.SetNRGBA(b.rect.Min.X+x, b.rect.Min.Y+y, c.NRGBA())
}

// Image exposes the pixels covered by b as a standard library image.
func (b *Bitmap) Image() image.Image {
	return b.pix.SubImage(b.rect)
}

// Package imaging provides the raster and image-IO layer used by the pattern
// scanner.
//
// Decoded files are normalized into Bitmap values, which implement the
// read-only Raster interface consumed by the pattern and scan packages. The
// package also holds the tolerance-based color comparison and the bordered
// window view used for silhouette checks.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Views returned by Raster.View have their own (0,0) at the view's top-left
//
// # Color Comparison
//
// Colors are compared per channel on R, G and B only. Alpha is carried in
// RGBAColor but never compared, so a transparent marker color in a template
// matches opaque pixels in a target.
//
// # Thread Safety
//
// Bitmap reads are safe for concurrent use; SetPixel is not. ImageCache is
// safe for concurrent use.
//
// # Error Handling
//
// Only file and color-string operations return errors:
//   - File I/O and decoding errors during image loading
//   - Encoding errors when saving a bitmap
//   - Malformed hex color strings (ErrInvalidHexColor)
package imaging

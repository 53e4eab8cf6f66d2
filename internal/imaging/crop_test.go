package imaging

import (
	"image"
	"testing"
)

func TestCrop(t *testing.T) {
	b := createGradientBitmap(10, 8)

	result, err := Crop(b, image.Rect(2, 3, 7, 8))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width() != 5 || result.Height() != 5 {
		t.Errorf("dimensions: got %dx%d, want 5x5", result.Width(), result.Height())
	}
	if got := result.Pixel(0, 0); got != b.Pixel(2, 3) {
		t.Errorf("Pixel(0,0): got %v, want %v", got, b.Pixel(2, 3))
	}
	if got := result.Pixel(4, 4); got != b.Pixel(6, 7) {
		t.Errorf("Pixel(4,4): got %v, want %v", got, b.Pixel(6, 7))
	}
}

func TestCrop_OfView(t *testing.T) {
	b := createGradientBitmap(10, 10)

	result, err := Crop(b.View(4, 4, 6, 6), image.Rect(1, 1, 3, 3))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got := result.Pixel(0, 0); got != b.Pixel(5, 5) {
		t.Errorf("Pixel(0,0): got %v, want %v", got, b.Pixel(5, 5))
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	b := createGradientBitmap(100, 100)

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"x1 negative", image.Rect(-1, 0, 50, 50)},
		{"y1 negative", image.Rect(0, -1, 50, 50)},
		{"x2 too large", image.Rect(0, 0, 101, 50)},
		{"y2 too large", image.Rect(0, 0, 50, 101)},
		{"all out of bounds", image.Rect(-1, -1, 200, 200)},
		{"empty", image.Rect(10, 10, 10, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(b, tt.r); err == nil {
				t.Error("Crop should fail for an empty or out-of-bounds region")
			}
		})
	}
}

func TestColorBounds(t *testing.T) {
	marker := RGBAColor{A: 255}
	b := NewBlankBitmap(10, 10, RGBAColor{255, 255, 255, 255})
	b.SetPixel(3, 6, marker)
	b.SetPixel(7, 2, RGBAColor{1, 0, 0, 255})

	r, ok := ColorBounds(b, marker, 1)
	if !ok {
		t.Fatal("ColorBounds found nothing")
	}
	if want := image.Rect(3, 2, 8, 7); r != want {
		t.Errorf("bounds: got %v, want %v", r, want)
	}

	r, ok = ColorBounds(b, marker, 0)
	if !ok || r != image.Rect(3, 6, 4, 7) {
		t.Errorf("tolerance 0: got %v %v", r, ok)
	}

	if _, ok := ColorBounds(b, RGBAColor{0, 0, 255, 255}, 0); ok {
		t.Error("ColorBounds reported a color that is absent")
	}
}

func TestCropToColor(t *testing.T) {
	marker := RGBAColor{A: 255}
	b := NewBlankBitmap(10, 10, RGBAColor{255, 255, 255, 255})
	b.SetPixel(4, 5, marker)
	b.SetPixel(5, 6, marker)

	cropped, ok := CropToColor(b, marker, 0)
	if !ok {
		t.Fatal("CropToColor found nothing")
	}
	if cropped.Width() != 2 || cropped.Height() != 2 {
		t.Fatalf("size: got %dx%d, want 2x2", cropped.Width(), cropped.Height())
	}
	if cropped.Pixel(0, 0) != marker || cropped.Pixel(1, 1) != marker {
		t.Error("marker pixels not at the crop corners")
	}

	blank := NewBlankBitmap(3, 3, RGBAColor{255, 255, 255, 255})
	if got, ok := CropToColor(blank, marker, 0); ok || got != Raster(blank) {
		t.Error("CropToColor on a blank bitmap should return it unchanged")
	}
}

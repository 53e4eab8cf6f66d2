package imaging

import "testing"

func TestViewWithBorder(t *testing.T) {
	tests := []struct {
		name           string
		x, y, w, h     int
		wantW, wantH   int
		wantSX, wantSY int
	}{
		{"within bounds", 2, 2, 5, 5, 7, 7, 1, 1},
		{"top-left corner", 0, 0, 5, 5, 6, 6, 0, 0},
		{"bottom-right corner", 5, 5, 5, 5, 6, 6, 1, 1},
		{"top edge only", 3, 0, 2, 2, 4, 3, 1, 0},
		{"window past image", 8, 8, 5, 5, 3, 3, 1, 1},
		{"whole image", 0, 0, 10, 10, 10, 10, 0, 0},
	}

	img := createGradientBitmap(10, 10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, sx, sy := ViewWithBorder(img, tt.x, tt.y, tt.w, tt.h)
			if v.Width() != tt.wantW || v.Height() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", v.Width(), v.Height(), tt.wantW, tt.wantH)
			}
			if sx != tt.wantSX || sy != tt.wantSY {
				t.Errorf("shift: got (%d,%d), want (%d,%d)", sx, sy, tt.wantSX, tt.wantSY)
			}
		})
	}
}

func TestViewWithBorder_ShiftedAddressing(t *testing.T) {
	img := createGradientBitmap(10, 10)

	for _, off := range [][2]int{{0, 0}, {3, 4}, {7, 7}} {
		v, sx, sy := ViewWithBorder(img, off[0], off[1], 3, 3)

		// Window-relative (x, y) must read absolute (off+x, off+y).
		for y := -1; y <= 3; y++ {
			for x := -1; x <= 3; x++ {
				ax, ay := off[0]+x, off[1]+y
				c, ok := Lookup(v, x+sx, y+sy)
				inImage := ax >= 0 && ay >= 0 && ax < 10 && ay < 10
				if ok != inImage {
					t.Fatalf("offset %v rel (%d,%d): present=%v, want %v", off, x, y, ok, inImage)
				}
				if ok && (int(c.R) != ax || int(c.G) != ay) {
					t.Errorf("offset %v rel (%d,%d): got %v, want (%d,%d)", off, x, y, c, ax, ay)
				}
			}
		}
	}
}

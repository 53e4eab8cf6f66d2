package feed

import (
	"slices"

	"github.com/ironsheep/pattern-scan/internal/imaging"
)

// ReplayStats summarizes a Replay.
type ReplayStats struct {
	Painted     int `json:"painted"`
	OutOfBounds int `json:"out_of_bounds"`
	// Unsupported counts circle and rectangle records, which are not drawn.
	Unsupported int `json:"unsupported"`
}

// Replay paints point records onto canvas in timestamp order, so the latest
// placement of a pixel wins. Feed coordinate (originX, originY) lands on
// canvas pixel (0, 0). records is not modified.
func Replay(canvas *imaging.Bitmap, records []Record, originX, originY int) ReplayStats {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	var stats ReplayStats
	for _, rec := range ordered {
		if rec.Shape.Kind != KindPoint {
			stats.Unsupported++
			continue
		}
		x, y := rec.Shape.X-originX, rec.Shape.Y-originY
		if x < 0 || y < 0 || x >= canvas.Width() || y >= canvas.Height() {
			stats.OutOfBounds++
			continue
		}
		canvas.SetPixel(x, y, rec.Color)
		stats.Painted++
	}
	return stats
}

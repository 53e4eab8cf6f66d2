package scan

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/pattern-scan/internal/imaging"
	"github.com/ironsheep/pattern-scan/internal/pattern"
)

// Scan finds every anchor in img where p's silhouette is reproduced exactly
// and returns one translated copy of p per match.
//
// An anchor (x, y) matches when all pattern pixels, read at (x, y) plus the
// pattern coordinate, share one color within tolerance (the color of the
// first pattern pixel, not the marker color) and no pixel of the exclusion
// ring carries that color. Ring pixels outside the image are ignored.
//
// A pattern larger than img in either direction, or an empty pattern,
// yields no matches. Results are in row-major anchor order.
//
// Scan runs on a temporary pool of GOMAXPROCS workers; use a Scanner to
// reuse one pool across scans.
func Scan(img imaging.Raster, p *pattern.Pattern, tolerance uint8) []*pattern.Pattern {
	pool := NewWorkerPool(0)
	defer pool.Close()
	return scanWithPool(pool, img, p, tolerance)
}

func scanWithPool(pool *WorkerPool, img imaging.Raster, p *pattern.Pattern, tolerance uint8) []*pattern.Pattern {
	if p.IsEmpty() {
		return nil
	}

	start := time.Now()
	m := newMatcher(img, p, tolerance)

	cols := anchorCount(img.Width(), m.width)
	rows := anchorCount(img.Height(), m.height)
	if cols == 0 || rows == 0 {
		return nil
	}

	// One slot per row; every task writes only its own slot.
	found := make([][]*pattern.Pattern, rows)
	pool.ForEach(rows, func(y int) {
		for x := 0; x < cols; x++ {
			if m.matchAt(x, y) {
				found[y] = append(found[y], p.Translate(x, y))
			}
		}
	})
	matches := slices.Concat(found...)

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("scan complete",
			slog.String("scan_id", uuid.NewString()),
			slog.Int("anchors", cols*rows),
			slog.Int("pattern_size", p.Len()),
			slog.Int("matches", len(matches)),
			slog.Int("workers", pool.Workers()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
	return matches
}

// anchorCount is the number of window positions along one axis, 0 when the
// window does not fit.
func anchorCount(imageSize, windowSize int) int {
	if windowSize > imageSize {
		return 0
	}
	return imageSize - windowSize + 1
}

// matcher holds the read-only state shared by all anchors of one scan.
type matcher struct {
	img       imaging.Raster
	coords    []pattern.Coordinate
	ring      []pattern.Coordinate
	width     int
	height    int
	tolerance uint8
}

func newMatcher(img imaging.Raster, p *pattern.Pattern, tolerance uint8) *matcher {
	w, h := p.WindowSize()
	return &matcher{
		img:       img,
		coords:    p.Coordinates(),
		ring:      p.AdjacentCoordinates(),
		width:     w,
		height:    h,
		tolerance: tolerance,
	}
}

// matchAt tests the anchor (ox, oy).
func (m *matcher) matchAt(ox, oy int) bool {
	first, ok := imaging.Lookup(m.img, ox+m.coords[0].X, oy+m.coords[0].Y)
	if !ok {
		return false
	}

	for _, c := range m.coords {
		px, ok := imaging.Lookup(m.img, ox+c.X, oy+c.Y)
		if !ok || !imaging.EqualWithTolerance(first, px, m.tolerance) {
			return false
		}
	}

	view, shiftX, shiftY := imaging.ViewWithBorder(m.img, ox, oy, m.width, m.height)
	for _, c := range m.ring {
		px, ok := imaging.Lookup(view, c.X+shiftX, c.Y+shiftY)
		if ok && imaging.EqualWithTolerance(first, px, m.tolerance) {
			return false
		}
	}
	return true
}

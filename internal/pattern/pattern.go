package pattern

import (
	"image"
	"slices"
	"sync"

	"github.com/ironsheep/pattern-scan/internal/imaging"
)

// Pattern is an immutable set of unique coordinates describing a shape's
// silhouette.
//
// A pattern extracted from a template is expressed in the template's own
// coordinate space; a pattern returned by a scan is the same shape translated
// into the target image. The bounding window is computed at construction and
// the exclusion ring on first use; both are safe for concurrent readers.
type Pattern struct {
	coords []Coordinate
	set    map[Coordinate]struct{}
	width  int
	height int

	ringOnce sync.Once
	ring     []Coordinate
}

// New builds a pattern from coords, dropping duplicates. The first
// occurrence of each coordinate keeps its position.
func New(coords ...Coordinate) *Pattern {
	p := &Pattern{
		coords: make([]Coordinate, 0, len(coords)),
		set:    make(map[Coordinate]struct{}, len(coords)),
	}
	maxX, maxY := -1, -1
	for _, c := range coords {
		if _, dup := p.set[c]; dup {
			continue
		}
		p.set[c] = struct{}{}
		p.coords = append(p.coords, c)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	p.width, p.height = maxX+1, maxY+1
	return p
}

// FromTemplate extracts the pixels of img whose color equals marker within
// tolerance, visiting img in row-major order.
//
// Coordinates are stored exactly as found: the template is expected to be
// cropped so the shape touches x = 0 and y = 0. Any margin is kept and widens
// the window. A template with no matching pixel yields an empty pattern.
func FromTemplate(img imaging.Raster, marker imaging.RGBAColor, tolerance uint8) *Pattern {
	var coords []Coordinate
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if imaging.EqualWithTolerance(marker, img.Pixel(x, y), tolerance) {
				coords = append(coords, Coordinate{X: x, Y: y})
			}
		}
	}
	return New(coords...)
}

// buildRing collects every 8-neighbour of the pattern that is not itself in
// the pattern, sorted for deterministic iteration.
func (p *Pattern) buildRing() []Coordinate {
	seen := make(map[Coordinate]struct{})
	var ring []Coordinate
	for _, c := range p.coords {
		for _, d := range neighbourOffsets {
			n := c.Add(d.X, d.Y)
			if p.ContainsCoordinate(n) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			ring = append(ring, n)
		}
	}
	slices.SortFunc(ring, Coordinate.Compare)
	return ring
}

// Len returns the number of coordinates.
func (p *Pattern) Len() int { return len(p.coords) }

// IsEmpty reports whether the pattern has no coordinates.
func (p *Pattern) IsEmpty() bool { return len(p.coords) == 0 }

// Coordinates returns a copy of the pattern's coordinates in insertion order.
func (p *Pattern) Coordinates() []Coordinate {
	return slices.Clone(p.coords)
}

// WindowSize returns (max x + 1, max y + 1), or (0, 0) for an empty
// pattern.
func (p *Pattern) WindowSize() (width, height int) {
	return p.width, p.height
}

// AdjacentCoordinates returns the exclusion ring: all 8-connected
// neighbours of the pattern that are not pattern members. The result is
// sorted by Coordinate.Compare and is disjoint from Coordinates().
func (p *Pattern) AdjacentCoordinates() []Coordinate {
	p.ringOnce.Do(func() { p.ring = p.buildRing() })
	return slices.Clone(p.ring)
}

// ContainsCoordinate reports whether c is a member of the pattern.
func (p *Pattern) ContainsCoordinate(c Coordinate) bool {
	_, ok := p.set[c]
	return ok
}

// Translate returns a new pattern with every coordinate shifted by
// (dx, dy). p is not modified.
func (p *Pattern) Translate(dx, dy int) *Pattern {
	moved := make([]Coordinate, len(p.coords))
	for i, c := range p.coords {
		moved[i] = c.Add(dx, dy)
	}
	return New(moved...)
}

// Bounds returns the bounding rectangle of the coordinates (max exclusive),
// or the zero rectangle for an empty pattern.
func (p *Pattern) Bounds() image.Rectangle {
	if len(p.coords) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(p.coords[0].X, p.coords[0].Y, p.coords[0].X+1, p.coords[0].Y+1)
	for _, c := range p.coords[1:] {
		r = r.Union(image.Rect(c.X, c.Y, c.X+1, c.Y+1))
	}
	return r
}

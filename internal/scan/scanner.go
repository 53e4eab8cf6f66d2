package scan

import (
	"github.com/ironsheep/pattern-scan/internal/imaging"
	"github.com/ironsheep/pattern-scan/internal/pattern"
)

// Options configures a Scanner.
type Options struct {
	// Marker is the color that outlines the shape in a template.
	Marker imaging.RGBAColor
	// ExtractTolerance is used once, when building a pattern from a template.
	ExtractTolerance uint8
	// SearchTolerance is used for every anchor while scanning.
	SearchTolerance uint8
	// Workers is the pool size; 0 selects GOMAXPROCS.
	Workers int
}

// DefaultOptions returns black marker pixels, extraction tolerance 1 and an
// exact search.
func DefaultOptions() Options {
	return Options{
		Marker:           imaging.RGBAColor{},
		ExtractTolerance: 1,
		SearchTolerance:  0,
	}
}

// Scanner pairs Options with a long-lived worker pool.
type Scanner struct {
	opts Options
	pool *WorkerPool
}

// NewScanner starts a scanner. Call Close to stop its workers.
func NewScanner(opts Options) *Scanner {
	return &Scanner{
		opts: opts,
		pool: NewWorkerPool(opts.Workers),
	}
}

// Options returns the scanner's configuration.
func (s *Scanner) Options() Options { return s.opts }

// CreatePattern extracts the marker-colored silhouette from template.
func (s *Scanner) CreatePattern(template imaging.Raster) *pattern.Pattern {
	return pattern.FromTemplate(template, s.opts.Marker, s.opts.ExtractTolerance)
}

// ScanImage returns every exact occurrence of p in img.
func (s *Scanner) ScanImage(p *pattern.Pattern, img imaging.Raster) []*pattern.Pattern {
	return scanWithPool(s.pool, img, p, s.opts.SearchTolerance)
}

// ScanImages scans each image in turn; result i holds the matches in
// images[i].
func (s *Scanner) ScanImages(p *pattern.Pattern, images []imaging.Raster) [][]*pattern.Pattern {
	results := make([][]*pattern.Pattern, len(images))
	for i, img := range images {
		results[i] = s.ScanImage(p, img)
	}
	return results
}

// Close stops the worker pool. The scanner keeps working afterwards, on the
// calling goroutine only.
func (s *Scanner) Close() {
	s.pool.Close()
}

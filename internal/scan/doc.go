// Package scan locates exact occurrences of a pattern's silhouette in a
// raster.
//
// Every candidate top-left offset (anchor) is tested independently against
// the shared, read-only image and pattern, so the search is split by rows
// across a work-stealing WorkerPool and the per-row results are concatenated
// at the end. No locks guard the scan itself.
//
// # Exact Silhouettes
//
// Matching all pattern pixels is not enough: a template would otherwise match
// anywhere inside a larger blob of the same color. Each anchor is therefore
// also checked against the pattern's exclusion ring (its 8-connected
// boundary). A ring pixel sharing the matched color rejects the anchor.
//
// # Usage
//
//	s := scan.NewScanner(scan.DefaultOptions())
//	defer s.Close()
//	p := s.CreatePattern(template)
//	matches := s.ScanImage(p, canvas)
package scan

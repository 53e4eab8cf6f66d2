package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ironsheep/pattern-scan/internal/config"
	"github.com/ironsheep/pattern-scan/internal/feed"
	"github.com/ironsheep/pattern-scan/internal/imaging"
	"github.com/ironsheep/pattern-scan/internal/scan"
)

type scanArgs struct {
	cfg      config.Config
	template string
	targets  []string
	list     bool
	autocrop bool
}

// parseScanArgs applies flags on top of a copy of base.
func parseScanArgs(base *config.Config, args []string) (*scanArgs, error) {
	a := &scanArgs{cfg: *base}

	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&a.template, "template", "", "template image")
	fs.StringVar(&a.cfg.MarkerColor, "marker", a.cfg.MarkerColor, "marker color")
	fs.IntVar(&a.cfg.ExtractTolerance, "extract-tolerance", a.cfg.ExtractTolerance, "extraction tolerance")
	fs.IntVar(&a.cfg.SearchTolerance, "search-tolerance", a.cfg.SearchTolerance, "search tolerance")
	fs.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "scan workers")
	fs.BoolVar(&a.list, "list", false, "list matches")
	fs.BoolVar(&a.autocrop, "autocrop", false, "crop the template to its marker pixels")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, usageErrorf("scan: %v", err)
	}

	a.targets = fs.Args()
	if a.template == "" {
		return nil, usageErrorf("scan: -template is required")
	}
	if len(a.targets) == 0 {
		return nil, usageErrorf("scan: at least one target image is required")
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, usageErrorf("scan: %v", err)
	}
	return a, nil
}

func runScan(base *config.Config, args []string, out io.Writer) error {
	a, err := parseScanArgs(base, args)
	if err != nil {
		return err
	}
	start := time.Now()

	opts, err := a.cfg.ScanOptions()
	if err != nil {
		return err
	}
	cache := imaging.NewImageCache(a.cfg.CacheSize)

	tmpl, err := loadTemplate(cache, a, opts)
	if err != nil {
		return err
	}

	s := scan.NewScanner(opts)
	defer s.Close()

	p := s.CreatePattern(tmpl)
	if p.IsEmpty() {
		log.Printf("Warning: no pixel in %s matches marker %s", a.template, opts.Marker.Hex())
	}

	bitmaps, loaded := cache.LoadMany(a.targets)
	if len(loaded) < len(a.targets) {
		log.Printf("Warning: skipped %d unreadable target(s)", len(a.targets)-len(loaded))
	}
	if len(bitmaps) == 0 {
		return fmt.Errorf("no readable target images")
	}

	rasters := make([]imaging.Raster, len(bitmaps))
	for i, b := range bitmaps {
		rasters[i] = b
	}

	for i, matches := range s.ScanImages(p, rasters) {
		fmt.Fprintf(out, "%s: %d\n", loaded[i], len(matches))
		if !a.list {
			continue
		}
		for _, m := range matches {
			b := m.Bounds()
			fmt.Fprintf(out, "  %d,%d\n", b.Min.X, b.Min.Y)
		}
	}

	fmt.Fprintf(out, "Elapsed time: %s\n", time.Since(start).Round(10*time.Microsecond))
	return nil
}

// loadTemplate loads the template, cropped to its marker pixels when
// -autocrop is set.
func loadTemplate(cache *imaging.ImageCache, a *scanArgs, opts scan.Options) (imaging.Raster, error) {
	tmpl, err := cache.LoadBitmap(a.template)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", a.template, err)
	}
	if !a.autocrop {
		return tmpl, nil
	}

	cropped, ok := imaging.CropToColor(tmpl, opts.Marker, opts.ExtractTolerance)
	if ok && (cropped.Width() != tmpl.Width() || cropped.Height() != tmpl.Height()) {
		log.Printf("Template cropped from %dx%d to %dx%d", tmpl.Width(), tmpl.Height(), cropped.Width(), cropped.Height())
	}
	return cropped, nil
}

type replayArgs struct {
	feed       string
	out        string
	width      int
	height     int
	originX    int
	originY    int
	background string
}

func parseReplayArgs(args []string) (*replayArgs, error) {
	a := &replayArgs{}

	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&a.width, "width", 0, "canvas width")
	fs.IntVar(&a.height, "height", 0, "canvas height")
	fs.IntVar(&a.originX, "origin-x", 0, "feed x at canvas column 0")
	fs.IntVar(&a.originY, "origin-y", 0, "feed y at canvas row 0")
	fs.StringVar(&a.background, "background", "#FFFFFF", "canvas color")
	fs.StringVar(&a.out, "out", "", "output PNG")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, usageErrorf("replay: %v", err)
	}

	if fs.NArg() != 1 {
		return nil, usageErrorf("replay: exactly one feed file is required")
	}
	a.feed = fs.Arg(0)
	if a.width <= 0 || a.height <= 0 {
		return nil, usageErrorf("replay: -width and -height must be positive")
	}
	if a.out == "" {
		return nil, usageErrorf("replay: -out is required")
	}
	if _, err := imaging.ParseHexColor(a.background); err != nil {
		return nil, usageErrorf("replay: -background: %v", err)
	}
	return a, nil
}

func runReplay(_ *config.Config, args []string, out io.Writer) error {
	a, err := parseReplayArgs(args)
	if err != nil {
		return err
	}

	f, err := os.Open(a.feed)
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	records, err := feed.NewReader(f).ReadAll()
	if err != nil {
		return err
	}

	bg, _ := imaging.ParseHexColor(a.background)
	canvas := imaging.NewBlankBitmap(a.width, a.height, bg)
	stats := feed.Replay(canvas, records, a.originX, a.originY)

	if err := imaging.SaveBitmap(a.out, canvas); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d records, %d painted, %d out of bounds, %d unsupported\n",
		a.out, len(records), stats.Painted, stats.OutOfBounds, stats.Unsupported)
	return nil
}

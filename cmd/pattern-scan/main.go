package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/pattern-scan/internal/config"
	"github.com/ironsheep/pattern-scan/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// envFile is read for PATTERN_SCAN_* defaults when present.
const envFile = ".env"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("pattern-scan %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(envFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("pattern-scan v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		scan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	switch os.Args[1] {
	case "scan":
		err = runScan(cfg, os.Args[2:], os.Stdout)
	case "replay":
		err = runReplay(cfg, os.Args[2:], os.Stdout)
	default:
		err = usageErrorf("unknown command %q", os.Args[1])
	}

	var ue *usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.As(err, &ue):
		fmt.Fprintf(os.Stderr, "pattern-scan: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

// usageError marks bad command-line input.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "pattern-scan - find exact pixel-shape occurrences in images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pattern-scan scan -template T [options] TARGET...")
	fmt.Fprintln(w, "  pattern-scan replay -width W -height H -out OUT.png [options] FEED.csv")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan options:")
	fmt.Fprintln(w, "  -template PATH            Template image, cropped to the shape")
	fmt.Fprintln(w, "  -marker #RRGGBB           Shape color in the template")
	fmt.Fprintln(w, "  -extract-tolerance N      Tolerance when extracting the shape (0-255)")
	fmt.Fprintln(w, "  -search-tolerance N       Tolerance when matching targets (0-255)")
	fmt.Fprintln(w, "  -workers N                Scan goroutines (0 = GOMAXPROCS)")
	fmt.Fprintln(w, "  -list                     Print the top-left corner of every match")
	fmt.Fprintln(w, "  -autocrop                 Crop the template to its marker pixels first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay options:")
	fmt.Fprintln(w, "  -width, -height N         Canvas size")
	fmt.Fprintln(w, "  -origin-x, -origin-y N    Feed coordinate painted at canvas (0,0)")
	fmt.Fprintln(w, "  -background #RRGGBB       Initial canvas color (default #FFFFFF)")
	fmt.Fprintln(w, "  -out PATH                 Output PNG")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  --version, -v             Print version information")
	fmt.Fprintln(w, "  --help, -h                Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintln(w, "  PATTERN_SCAN_MARKER, PATTERN_SCAN_EXTRACT_TOLERANCE, PATTERN_SCAN_SEARCH_TOLERANCE,")
	fmt.Fprintln(w, "  PATTERN_SCAN_WORKERS, PATTERN_SCAN_CACHE_SIZE")
	fmt.Fprintln(w, "  PATTERN_SCAN_LOG_LEVEL=debug    Enable debug logging")
}

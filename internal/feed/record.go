// Package feed reads timestamped pixel-placement records and replays them
// onto a canvas that can then be scanned for patterns.
//
// A feed is CSV with the header
//
//	timestamp,user,coordinate,pixel_color
//
// where coordinate is "x,y" for a single pixel, "x,y,r" for a circle or
// "x1,x2,y1,y2" for a rectangle, and pixel_color is "#RRGGBB". Only single
// pixel records are painted by Replay.
package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/pattern-scan/internal/imaging"
)

// TimestampLayout is the feed's timestamp format. Fractional seconds are
// optional when parsing.
const TimestampLayout = "2006-01-02 15:04:05"

var (
	// ErrInvalidCoordinate is returned for coordinate fields that are not
	// 2, 3 or 4 comma-separated integers.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidColor is returned for colors other than "#RRGGBB".
	ErrInvalidColor = errors.New("invalid hex color format")
)

// Kind identifies the shape a record describes.
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is a record's placement. Which fields are set depends on Kind:
// X, Y for points; X, Y, R for circles; X1, X2, Y1, Y2 for rectangles.
type Shape struct {
	Kind           Kind
	X, Y, R        int
	X1, X2, Y1, Y2 int
}

// Record is one placement from the feed.
type Record struct {
	Timestamp time.Time
	User      string
	Shape     Shape
	Color     imaging.RGBAColor
}

// ParseError reports a malformed field in a feed.
type ParseError struct {
	Line  int    // 1-based line in the input, 0 if unknown
	Field string // column name
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("feed line %d, field %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("feed field %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRecord builds a Record from its four column values in header order.
func ParseRecord(timestamp, user, coordinate, color string) (Record, error) {
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return Record{}, &ParseError{Field: "timestamp", Err: err}
	}
	shape, err := ParseShape(coordinate)
	if err != nil {
		return Record{}, &ParseError{Field: "coordinate", Err: err}
	}
	c, err := ParseColor(color)
	if err != nil {
		return Record{}, &ParseError{Field: "pixel_color", Err: err}
	}
	return Record{Timestamp: ts, User: strings.TrimSpace(user), Shape: shape, Color: c}, nil
}

// ParseTimestamp parses "2006-01-02 15:04:05[.fff]" as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, strings.TrimSpace(s))
}

// ParseShape parses "x,y", "x,y,r" or "x1,x2,y1,y2". Surrounding quotes and
// spaces are ignored.
func ParseShape(s string) (Shape, error) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	parts := strings.Split(s, ",")

	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Shape{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 2:
		return Shape{Kind: KindPoint, X: vals[0], Y: vals[1]}, nil
	case 3:
		return Shape{Kind: KindCircle, X: vals[0], Y: vals[1], R: vals[2]}, nil
	case 4:
		return Shape{Kind: KindRectangle, X1: vals[0], X2: vals[1], Y1: vals[2], Y2: vals[3]}, nil
	}
	return Shape{}, fmt.Errorf("%w: %q has %d parts", ErrInvalidCoordinate, s, len(vals))
}

// ParseColor parses exactly "#RRGGBB"; the result is opaque.
func ParseColor(s string) (imaging.RGBAColor, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return imaging.RGBAColor{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := imaging.ParseHexColor(s)
	if err != nil {
		return imaging.RGBAColor{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

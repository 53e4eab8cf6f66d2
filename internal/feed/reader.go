package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Columns lists the header names a feed must provide.
var Columns = []string{"timestamp", "user", "coordinate", "pixel_color"}

// Reader decodes Records from CSV input. Columns may appear in any order.
type Reader struct {
	r     *csv.Reader
	index map[string]int
}

// NewReader wraps r. The header is read on the first call to Read.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return &Reader{r: cr}
}

func (r *Reader) readHeader() error {
	header, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("feed is empty: %w", io.ErrUnexpectedEOF)
		}
		return err
	}
	r.index = make(map[string]int, len(header))
	for i, name := range header {
		r.index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range Columns {
		if _, ok := r.index[name]; !ok {
			return &ParseError{Line: 1, Field: name, Err: errors.New("missing column")}
		}
	}
	return nil
}

// Read returns the next record, or io.EOF after the last one.
func (r *Reader) Read() (Record, error) {
	if r.index == nil {
		if err := r.readHeader(); err != nil {
			return Record{}, err
		}
	}

	row, err := r.r.Read()
	if err != nil {
		return Record{}, err
	}
	line, _ := r.r.FieldPos(0)

	col := func(name string) string {
		if i := r.index[name]; i < len(row) {
			return row[i]
		}
		return ""
	}
	rec, err := ParseRecord(col("timestamp"), col("user"), col("coordinate"), col("pixel_color"))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = line
		}
		return Record{}, err
	}
	return rec, nil
}

// ReadAll reads every remaining record. It stops at the first malformed
// row.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Package csv parses delimited text files into an in-memory dataset. The
// first record is treated as the header row; a UTF-8 BOM on the first header
// cell is stripped. Input in a non-UTF-8 encoding is decoded on the fly.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"csvload/internal/dataset"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// Encoding names the input text encoding (IANA name, e.g. "utf-8",
	// "windows-1250", "latin1"). Empty means UTF-8.
	Encoding string

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse consumes CSV records from r and returns the parsed dataset. Column
// names preserve the header order; empty cells become nil. Every data row
// must have the same width as the header; any malformed record, including an
// undecodable byte sequence, is a hard error (this loader has no soft-fail
// row skipping: a parse failure ends the run).
func (p *Parser) Parse(r io.Reader) (*dataset.Dataset, error) {
	dec, err := decodeReader(r, p.opt.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dec)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := headerNames(header, p.opt)

	d := &dataset.Dataset{Columns: columns}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		// encoding/csv enforces the header width; this guards the
		// FieldsPerRecord=-1 case should options ever relax it.
		if len(row) != len(columns) {
			return nil, fmt.Errorf("read csv row %d: expected %d fields, got %d", line, len(columns), len(row))
		}

		cells := make([]any, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			cells[i] = emptyToNil(val)
		}
		d.Rows = append(d.Rows, cells)
	}

	return d, nil
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// headerNames trims header cells and strips a UTF-8 BOM from the first one.
// Names are otherwise preserved verbatim so the destination columns match the
// file header.
func headerNames(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := col
		if opt.TrimSpace {
			c = strings.TrimSpace(c)
		}
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = c
	}
	return res
}

// Package tabular reads delimited text files that start with a header line.
//
// A Source yields one Row per data line. Cells are read by 0-based column index,
// as text (Get) or as a number (Float64). Column positions are resolved once
// through FieldIndex.
//
//	src, err := tabular.Open("iris.tbl")
//	if err != nil { ... }
//	defer src.Close()
//	idx, err := src.FieldIndex(tabular.ByName("species"))
//	for src.HasNext() {
//		row, err := src.Next()
//		...
//	}
package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Source is a forward-only reader over a header-bearing delimited text stream.
// It keeps one row of look-ahead so HasNext never blocks on the caller.
// A Source is not safe for concurrent use.
type Source struct {
	sc      *bufio.Scanner
	delim   string
	line    int
	closer  io.Closer
	columns []string
	log     *slog.Logger

	// look-ahead slot: exactly one of pending/pendErr is set unless done
	pending *Row
	pendErr error
	done    bool
}

// Open opens the file at path and parses its header. The Source owns the file;
// call Close when finished.
func Open(path string, opts ...Option) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := newSource(f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.closer = f
	return s, nil
}

// NewSource parses the header from r. The caller keeps ownership of r.
func NewSource(r io.Reader, opts ...Option) (*Source, error) {
	return newSource(r, opts)
}

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

func newSource(r io.Reader, opts []Option) (*Source, error) {
	o := newOptions(opts)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	s := &Source{
		sc:    sc,
		delim: string(o.delimiter),
		log:   o.logger,
	}

	header, ok := s.scanLine()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: header: %w", ErrMalformedInput, err)
		}
		return nil, fmt.Errorf("%w: missing header line", ErrMalformedInput)
	}
	s.columns = strings.Split(header, s.delim)
	s.log.Debug("tabular: header parsed", "columns", len(s.columns), "names", s.columns)
	s.advance()
	return s, nil
}

// scanLine returns the next non-blank line with any trailing CR removed.
// Cells are never quoted: every delimiter splits.
func (s *Source) scanLine() (string, bool) {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSuffix(s.sc.Text(), "\r")
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// advance fills the look-ahead slot with the next row or error.
func (s *Source) advance() {
	s.pending, s.pendErr = nil, nil
	if s.done {
		return
	}
	text, ok := s.scanLine()
	if !ok {
		// I/O failure or an overlong line: report it once, then stop.
		switch err := s.sc.Err(); {
		case errors.Is(err, bufio.ErrTooLong):
			s.pendErr = fmt.Errorf("%w: line %d: %v", ErrMalformedInput, s.line+1, err)
		case err != nil:
			s.pendErr = err
		}
		s.done = true
		return
	}
	rec := strings.Split(text, s.delim)
	if len(rec) != len(s.columns) {
		s.pendErr = fmt.Errorf("%w: line %d has %d cells, header has %d",
			ErrMalformedInput, s.line, len(rec), len(s.columns))
		return
	}
	s.pending = &Row{line: s.line, cells: rec, columns: s.columns}
}

// Size returns the number of columns in the header.
func (s *Source) Size() int { return len(s.columns) }

// Columns returns a copy of the header names in order.
func (s *Source) Columns() []string { return append([]string(nil), s.columns...) }

// FieldIndex resolves a column reference to its 0-based index.
func (s *Source) FieldIndex(ref ColumnRef) (int, error) {
	return ref.resolve(s.columns)
}

// HasNext reports whether another call to Next will return a row or a row error.
func (s *Source) HasNext() bool {
	return s.pending != nil || s.pendErr != nil
}

// Next returns the next data row.
func (s *Source) Next() (*Row, error) {
	if !s.HasNext() {
		return nil, ErrNoMoreRows
	}
	row, err := s.pending, s.pendErr
	s.advance()
	return row, err
}

// Close releases the underlying file when the Source was created by Open.
func (s *Source) Close() error {
	s.done = true
	s.pending, s.pendErr = nil, nil
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

// Row is one data line. Cells are addressed by 0-based column index.
type Row struct {
	line    int
	cells   []string
	columns []string
}

// Line is the 1-based line number of the row in its source.
func (r *Row) Line() int { return r.line }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Get returns cell i verbatim.
func (r *Row) Get(i int) (string, error) {
	if i < 0 || i >= len(r.cells) {
		return "", fmt.Errorf("%w: index %d on line %d", ErrUnknownColumn, i, r.line)
	}
	return r.cells[i], nil
}

// Float64 parses cell i as a number. Surrounding blanks are ignored.
func (r *Row) Float64(i int) (float64, error) {
	cell, err := r.Get(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q line %d: %q", ErrNumericParse, r.columns[i], r.line, cell)
	}
	return v, nil
}

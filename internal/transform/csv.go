// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
)

// Field states of csvReader.
const (
	stateStartField = iota
	stateInField
	stateQuoted
	stateQuoteInQuoted
)

// csvReader reads comma-separated rows leniently: rows may differ in field
// count, a quote inside an unquoted field is kept as text, and text after a
// closing quote is appended to the field. Quoted fields keep their bytes,
// line breaks included. A blank line is an empty row.
type csvReader struct {
	r *bufio.Reader
}

// NewCSVReader returns a lenient CSV row reader.
func NewCSVReader(r io.Reader) RowReader {
	return &csvReader{r: bufio.NewReader(r)}
}

// Read returns the next row, or io.EOF after the last one. A quoted field
// left open at end of input ends the row.
func (c *csvReader) Read() ([]string, error) {
	var (
		row   []string
		field []byte
		state = stateStartField
		empty = true
	)
	for {
		b, err := c.r.ReadByte()
		if errors.Is(err, io.EOF) {
			if empty {
				return nil, io.EOF
			}
			return append(row, string(field)), nil
		}
		if err != nil {
			return nil, err
		}

		if empty && (b == '\r' || b == '\n') {
			if err := c.endLine(b); err != nil {
				return nil, err
			}
			return []string{}, nil
		}
		empty = false

		switch state {
		case stateQuoted:
			if b == '"' {
				state = stateQuoteInQuoted
			} else {
				field = append(field, b)
			}
			continue
		case stateQuoteInQuoted:
			if b == '"' {
				field = append(field, '"')
				state = stateQuoted
				continue
			}
		case stateStartField:
			if b == '"' {
				state = stateQuoted
				continue
			}
		}

		switch b {
		case ',':
			row = append(row, string(field))
			field = field[:0]
			state = stateStartField
		case '\r', '\n':
			if err := c.endLine(b); err != nil {
				return nil, err
			}
			return append(row, string(field)), nil
		default:
			field = append(field, b)
			state = stateInField
		}
	}
}

// endLine consumes the LF of a CRLF pair.
func (c *csvReader) endLine(b byte) error {
	if b != '\r' {
		return nil
	}
	next, err := c.r.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if next[0] == '\n' {
		_, err = c.r.ReadByte()
	}
	return err
}

type csvWriter struct {
	w *csv.Writer
}

// NewCSVWriter returns a RowWriter that writes comma-separated rows with
// minimal quoting. Rows end in LF; line breaks inside fields are written
// as they are.
func NewCSVWriter(w io.Writer) RowWriter {
	return &csvWriter{w: csv.NewWriter(w)}
}

func (c *csvWriter) Write(row []string) error {
	return c.w.Write(row)
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader streams rows from one worksheet of a workbook. A worksheet
// does not store trailing empty cells, so rows are padded with empty
// fields to the width of the header.
type XLSXReader struct {
	f      *excelize.File
	rows   *excelize.Rows
	header bool
	width  int
}

// NewXLSXReader opens the workbook in r and iterates over sheet, or over
// the first sheet when sheet is empty. Cells are read as displayed text.
func NewXLSXReader(r io.Reader, sheet string) (*XLSXReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening sheet %q: %w", sheet, err)
	}
	return &XLSXReader{f: f, rows: rows}, nil
}

// Read returns the next row, or io.EOF after the last one.
func (x *XLSXReader) Read() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	row, err := x.rows.Columns()
	if err != nil {
		return nil, err
	}
	if !x.header {
		x.header = true
		x.width = len(row)
	}
	for len(row) < x.width {
		row = append(row, "")
	}
	return row, nil
}

// Close releases the workbook.
func (x *XLSXReader) Close() error {
	rowsErr := x.rows.Close()
	if err := x.f.Close(); err != nil {
		return err
	}
	return rowsErr
}

// XLSXWriter streams rows into the first sheet of a new workbook and
// writes the workbook to the underlying writer on Close.
type XLSXWriter struct {
	f   *excelize.File
	sw  *excelize.StreamWriter
	out io.Writer
	row int
}

// NewXLSXWriter starts a workbook that will be written to w.
func NewXLSXWriter(w io.Writer) (*XLSXWriter, error) {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(f.GetSheetName(0))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet writer: %w", err)
	}
	return &XLSXWriter{f: f, sw: sw, out: w}, nil
}

// Write appends row as text cells.
func (x *XLSXWriter) Write(row []string) error {
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	return x.sw.SetRow(cell, values)
}

// Close flushes the sheet and writes the workbook.
func (x *XLSXWriter) Close() error {
	defer x.f.Close()
	if err := x.sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if _, err := x.f.WriteTo(x.out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/measure-engine/pkg/types"
)

// StdioPath selects standard input or output instead of a file.
const StdioPath = "-"

// ErrUnknownFormat is returned when a table format is not supported or
// cannot be inferred from a file name.
var ErrUnknownFormat = errors.New("unknown table format")

// FileOptions configures TransformFile.
type FileOptions struct {
	Options

	// Format applies to both input and output. Auto infers each from its
	// file extension; standard input and output are CSV.
	Format types.TableFormat

	// Sheet selects the worksheet of an xlsx input.
	Sheet string
}

// DetectFormat resolves format for path, inferring it from the extension
// when format is auto or empty.
func DetectFormat(path string, format types.TableFormat) (types.TableFormat, error) {
	switch format {
	case types.FormatCSV, types.FormatXLSX:
		return format, nil
	case types.FormatAuto, "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if path == StdioPath {
		return types.FormatCSV, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return types.FormatCSV, nil
	case ".xlsx", ".xlsm":
		return types.FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnknownFormat, path)
}

// TransformFile runs Transform from inPath to outPath. The output is
// written to a temporary file in the destination directory and renamed
// into place only on success, so a failed run leaves no partial table and
// inPath may equal outPath.
func TransformFile(ctx context.Context, inPath, outPath string, c Classifier, opts FileOptions) (Summary, error) {
	inFormat, err := DetectFormat(inPath, opts.Format)
	if err != nil {
		return Summary{}, err
	}
	outFormat, err := DetectFormat(outPath, opts.Format)
	if err != nil {
		return Summary{}, err
	}

	in := io.Reader(os.Stdin)
	if inPath != StdioPath {
		f, err := os.Open(inPath)
		if err != nil {
			return Summary{}, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var reader RowReader
	switch inFormat {
	case types.FormatXLSX:
		xr, err := NewXLSXReader(in, opts.Sheet)
		if err != nil {
			return Summary{}, fmt.Errorf("reading %s: %w", inPath, err)
		}
		defer xr.Close()
		reader = xr
	default:
		reader = NewCSVReader(in)
	}

	out, err := createOutput(outPath)
	if err != nil {
		return Summary{}, err
	}

	var writer RowWriter
	switch outFormat {
	case types.FormatXLSX:
		xw, err := NewXLSXWriter(out.file)
		if err != nil {
			out.abort()
			return Summary{}, err
		}
		writer = xw
	default:
		writer = NewCSVWriter(out.file)
	}

	summary, err := Transform(ctx, reader, writer, c, opts.Options)
	if err != nil {
		out.abort()
		return summary, err
	}
	if err := writer.Close(); err != nil {
		out.abort()
		return summary, fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.commit(); err != nil {
		return summary, err
	}
	return summary, nil
}

type output struct {
	file *os.File
	tmp  string
	dest string
}

func createOutput(path string) (*output, error) {
	if path == StdioPath {
		return &output{file: os.Stdout}, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".normalize-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	return &output{file: f, tmp: f.Name(), dest: path}, nil
}

func (o *output) commit() error {
	if o.tmp == "" {
		return nil
	}
	if err := o.file.Close(); err != nil {
		os.Remove(o.tmp)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(o.tmp, o.dest); err != nil {
		os.Remove(o.tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (o *output) abort() {
	if o.tmp == "" {
		return
	}
	o.file.Close()
	os.Remove(o.tmp)
}

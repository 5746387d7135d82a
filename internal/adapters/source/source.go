// Package source reads raw guess rows exported from the pool spreadsheet.
package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/babypool/internal/domain/record"
)

// Format is the encoding of an export.
type Format string

// Supported formats.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Source yields every raw row of one pool, in submission order.
type Source interface {
	Records(ctx context.Context) ([]record.Raw, error)
}

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithFormat forces a format instead of guessing from the extension.
func WithFormat(f Format) Option {
	return func(s *FileSource) {
		s.format = f
	}
}

// FileSource reads a JSON array of objects or a CSV file with a header row.
type FileSource struct {
	path   string
	format Format
}

// NewFileSource creates a source for path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Records reads and parses the whole file.
func (s *FileSource) Records(_ context.Context) ([]record.Raw, error) {
	format := s.format
	if format == FormatAuto {
		format = formatFromPath(s.path)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatJSON:
		return ReadJSON(f)
	case FormatCSV:
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReadJSON parses a JSON array of row objects. Numbers are kept as
// json.Number so identity cells survive verbatim.
func ReadJSON(r io.Reader) ([]record.Raw, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []record.Raw
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return rows, nil
}

// ReadCSV parses a CSV export. The first row names the columns; every cell
// is kept as a string.
func ReadCSV(r io.Reader) ([]record.Raw, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrRead, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []record.Raw
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		row := make(record.Raw, len(header))
		for i, key := range header {
			row[key] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return Format(strings.TrimPrefix(filepath.Ext(path), "."))
	}
}

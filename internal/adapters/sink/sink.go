// Package sink writes scored results for downstream consumers.
package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/babypool/internal/domain/model"
	"github.com/okian/babypool/internal/domain/types"
)

const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Header is the CSV header row.
var Header = []string{"Your Name", "Your Email", "Timestamp", "Overall Score"}

// Format is the encoding of the output.
type Format string

// Supported formats.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Sink receives one scored batch.
type Sink interface {
	Write(ctx context.Context, results []model.Result) error
}

// Option applies a configuration option to the FileSink.
type Option func(*FileSink)

// WithFormat forces a format instead of guessing from the extension.
func WithFormat(f Format) Option {
	return func(s *FileSink) {
		s.format = f
	}
}

// FileSink writes results to a file, creating parent directories.
type FileSink struct {
	path   string
	format Format
}

// NewFileSink creates a sink for path.
func NewFileSink(path string, opts ...Option) *FileSink {
	s := &FileSink{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the destination path.
func (s *FileSink) Path() string { return s.path }

// Write replaces the destination with results.
func (s *FileSink) Write(_ context.Context, results []model.Result) error {
	format := s.format
	if format == FormatAuto {
		format = formatFromPath(s.path)
	}
	if format != FormatCSV && format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	// Write next to the destination and rename so a failed write keeps the
	// previous output.
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if format == FormatJSON {
		err = WriteJSON(f, results)
	} else {
		err = WriteCSV(f, results)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %v", ErrWrite, closeErr)
	}
	if err != nil {
		return err
	}
	if err := os.Chmod(tmp, filePermission); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// WriteCSV writes the header row followed by one row per result.
func WriteCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, r := range results {
		row := []string{r.Name, r.Email, r.Timestamp, FormatScore(r.OverallScore)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.ScoreRows(results)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// FormatScore renders a score with the shortest exact representation.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
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

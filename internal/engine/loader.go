package engine

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"golang.org/x/sync/errgroup"
)

const chunkRows = 4096

var utf8BOM = []byte("\xef\xbb\xbf")

// Cells holding one of these are loaded as missing values.
var nullValues = []string{"", "NA", "N/A", "NaN", "nan", "null"}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02.01.2006",
}

// Spreadsheet exports keep dates as serial day numbers counted from
// 1899-12-30; the fraction is the time of day.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const maxSerialDay = 2958465 // 9999-12-31

type LoadOptions struct {
	// Delimiter defaults to a comma.
	Delimiter rune
	Allocator memory.Allocator
}

func (o LoadOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o LoadOptions) allocator() memory.Allocator {
	if o.Allocator == nil {
		return memory.DefaultAllocator
	}
	return o.Allocator
}

// Load reads both input files concurrently. The subindex table needs at least
// one value column, the main index table needs the main index column plus at
// least one competing index.
func Load(ctx context.Context, subindexPath, mainIndexPath string, opts LoadOptions) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ds Dataset
	var g errgroup.Group
	g.Go(func() error {
		t, err := LoadTable(subindexPath, opts)
		if err != nil {
			return err
		}
		ds.Subindices = t
		return nil
	})
	g.Go(func() error {
		t, err := LoadTable(mainIndexPath, opts)
		if err != nil {
			return err
		}
		ds.MainIndex = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(ds.Subindices.Fields) == 0 {
		return nil, errors.Wrapf(LoadError, "%s: no subindex columns", subindexPath)
	}
	if len(ds.MainIndex.Fields) < 2 {
		return nil, errors.Wrapf(LoadError, "%s: need a main index column and at least one competing index", mainIndexPath)
	}
	return &ds, nil
}

// LoadTable reads a delimited file with a header row. The first column is
// parsed as a date, every other column as a float.
func LoadTable(path string, opts LoadOptions) (*Table, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read %s", path), LoadError)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	header, err := readHeader(content, opts.delimiter())
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "header of %s", path), LoadError)
	}
	if err := checkHeader(header); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "header of %s", path), LoadError)
	}

	fields := make([]arrow.Field, len(header))
	fields[0] = arrow.Field{Name: header[0], Type: arrow.BinaryTypes.String, Nullable: true}
	for i, name := range header[1:] {
		fields[i+1] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	r := csv.NewReader(bytes.NewReader(content), schema,
		csv.WithHeader(true),
		csv.WithComma(opts.delimiter()),
		csv.WithChunk(chunkRows),
		csv.WithNullReader(true, nullValues...),
		csv.WithAllocator(opts.allocator()),
	)
	defer r.Release()

	t := newTable(filepath.Base(path), header[0], header[1:])
	for r.Next() {
		if err := t.appendRecord(r.Record()); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
	}
	if err := r.Err(); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read %s", path), LoadError)
	}

	slog.Info("table loaded",
		slog.String("table", t.Name),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Fields)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return t, nil
}

func readHeader(content []byte, delimiter rune) ([]string, error) {
	r := stdcsv.NewReader(bytes.NewReader(content))
	r.Comma = delimiter
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file is empty")
	}
	return header, err
}

func checkHeader(header []string) error {
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return errors.New("no columns")
	}
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return errors.Newf("duplicate column %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// appendRecord copies one arrow record into the table. Rows are numbered as
// file lines, the header being line 1.
func (t *Table) appendRecord(rec arrow.Record) error {
	dates, ok := rec.Column(0).(*array.String)
	if !ok {
		return errors.Wrapf(LoadError, "date column has type %s", rec.Column(0).DataType())
	}
	values := make([]*array.Float64, len(t.Fields))
	for j := range t.Fields {
		col, ok := rec.Column(j + 1).(*array.Float64)
		if !ok {
			return errors.Wrapf(LoadError, "column %q has type %s", t.Fields[j], rec.Column(j+1).DataType())
		}
		values[j] = col
	}

	for i := 0; i < int(rec.NumRows()); i++ {
		line := t.Len() + 2
		if dates.IsNull(i) {
			return errors.Wrapf(ParseError, "line %d: empty date", line)
		}
		d, err := parseDate(dates.Value(i))
		if err != nil {
			return errors.Wrapf(ParseError, "line %d: %v", line, err)
		}
		if n := t.Len(); n > 0 && !d.After(t.Dates[n-1]) {
			return errors.Wrapf(LoadError, "line %d: date %s does not follow %s",
				line, d.Format(time.DateOnly), t.Dates[n-1].Format(time.DateOnly))
		}

		t.Dates = append(t.Dates, d)
		for j, col := range values {
			t.Columns[j] = append(t.Columns[j], null.NewFloat(col.Value(i), col.IsValid(i)))
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	if d, ok := parseSerialDate(s); ok {
		return d, nil
	}
	return time.Time{}, errors.Newf("unrecognised date %q", s)
}

func parseSerialDate(s string) (time.Time, bool) {
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return time.Time{}, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 1 || v > maxSerialDay {
		return time.Time{}, false
	}
	days := math.Floor(v)
	secs := math.Round((v - days) * 24 * 60 * 60)
	return serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second), true
}

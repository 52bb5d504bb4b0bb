package engine

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

// Table holds one input file in struct-of-arrays form. It is never mutated
// after LoadTable returns.
type Table struct {
	Name      string
	DateField string

	// Value columns in header order, Columns[i] belongs to Fields[i].
	Fields  []string
	Dates   []time.Time
	Columns [][]null.Float

	index map[string]int
}

func newTable(name, dateField string, fields []string) *Table {
	t := &Table{
		Name:      name,
		DateField: dateField,
		Fields:    fields,
		Columns:   make([][]null.Float, len(fields)),
		index:     make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		t.index[f] = i
	}
	return t
}

func (t *Table) Len() int {
	return len(t.Dates)
}

func (t *Table) HasField(name string) bool {
	if name == t.DateField {
		return true
	}
	_, ok := t.index[name]
	return ok
}

// Column returns the values of a value column in row order.
func (t *Table) Column(name string) ([]null.Float, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.Wrapf(FieldNotFoundError, "column %q in %s", name, t.Name)
	}
	return t.Columns[i], nil
}

// Dataset is the immutable context shared by every session: the subindex
// table and the main index table (main index column first, then the
// competing indices).
type Dataset struct {
	Subindices *Table
	MainIndex  *Table
}

func (ds *Dataset) SubindexFields() []string {
	return slices.Clone(ds.Subindices.Fields)
}

func (ds *Dataset) MainIndexField() string {
	return ds.MainIndex.Fields[0]
}

func (ds *Dataset) CompetingFields() []string {
	return slices.Clone(ds.MainIndex.Fields[1:])
}

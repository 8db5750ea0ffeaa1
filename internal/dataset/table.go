// Package dataset holds the in-memory table of published entries that the
// chart builders consume. A table is an ordered list of rows with three
// well-known columns (published_date, title, response) plus arbitrary
// numeric and label columns referenced by name.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Well-known column names.
const (
	ColPublishedDate = "published_date"
	ColTitle         = "title"
	ColResponse      = "response"
)

// Values of the response column.
const (
	KindArticle  = "article"
	KindResponse = "response"
)

// Sentinel errors returned by table operations.
var (
	ErrEmptyTable     = errors.New("table has no rows")
	ErrColumnNotFound = errors.New("column not found")
	ErrNotNumeric     = errors.New("column is not numeric")
)

// Entry is a single published item: an article or a response to one.
// Numeric columns (claps, reads, word_count, ...) live in Values, string
// category columns (publication, tag, ...) in Labels.
type Entry struct {
	PublishedDate time.Time          `json:"published_date"`
	Title         string             `json:"title"`
	Kind          string             `json:"response"`
	Values        map[string]float64 `json:"values,omitempty"`
	Labels        map[string]string  `json:"labels,omitempty"`
}

// Value returns the named numeric value for the entry.
func (e Entry) Value(col string) (float64, bool) {
	v, ok := e.Values[col]
	return v, ok
}

// Label returns the named label for the entry. The well-known string
// columns resolve here too so GroupBy can segment on them.
func (e Entry) Label(col string) (string, bool) {
	switch col {
	case ColTitle:
		return e.Title, true
	case ColResponse:
		return e.Kind, true
	}
	v, ok := e.Labels[col]
	return v, ok
}

// Table is an ordered collection of entries. Tables handed to chart
// builders are never mutated; operations that reorder or extend rows work
// on a copy.
type Table struct {
	entries []Entry
}

// New returns a table over the given entries. The slice is used directly.
func New(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the underlying rows. Callers must not mutate them.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Copy returns a deep copy of the table, including per-row maps, so the
// copy can be sorted or extended without touching the original.
func (t *Table) Copy() *Table {
	entries := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		entries[i] = e
		if e.Values != nil {
			entries[i].Values = make(map[string]float64, len(e.Values))
			for k, v := range e.Values {
				entries[i].Values[k] = v
			}
		}
		if e.Labels != nil {
			entries[i].Labels = make(map[string]string, len(e.Labels))
			for k, v := range e.Labels {
				entries[i].Labels[k] = v
			}
		}
	}
	return &Table{entries: entries}
}

// Numeric returns the named numeric column in row order.
func (t *Table) Numeric(col string) ([]float64, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTable
	}
	out := make([]float64, len(t.entries))
	for i, e := range t.entries {
		v, ok := e.Value(col)
		if !ok {
			if _, isLabel := e.Label(col); isLabel {
				return nil, fmt.Errorf("column %q: %w", col, ErrNotNumeric)
			}
			return nil, fmt.Errorf("column %q: %w", col, ErrColumnNotFound)
		}
		out[i] = v
	}
	return out, nil
}

// Dates returns the published_date column in row order.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.PublishedDate
	}
	return out
}

// Titles returns the title column in row order.
func (t *Table) Titles() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Title
	}
	return out
}

// CumSum returns the running cumulative sum of the named numeric column.
func (t *Table) CumSum(col string) ([]float64, error) {
	vals, err := t.Numeric(col)
	if err != nil {
		return nil, err
	}
	var sum float64
	out := make([]float64, len(vals))
	for i, v := range vals {
		sum += v
		out[i] = sum
	}
	return out, nil
}

// Max returns the maximum of the named numeric column.
func (t *Table) Max(col string) (float64, error) {
	vals, err := t.Numeric(col)
	if err != nil {
		return 0, err
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// Min returns the minimum of the named numeric column.
func (t *Table) Min(col string) (float64, error) {
	vals, err := t.Numeric(col)
	if err != nil {
		return 0, err
	}
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// SortByDate sorts rows ascending by published_date. The sort is stable so
// same-day entries keep their input order.
func (t *Table) SortByDate() {
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].PublishedDate.Before(t.entries[j].PublishedDate)
	})
}

// SortByColumn sorts rows ascending by the named numeric column.
func (t *Table) SortByColumn(col string) error {
	if _, err := t.Numeric(col); err != nil {
		return err
	}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Values[col] < t.entries[j].Values[col]
	})
	return nil
}

// AddColumn sets the named numeric column across all rows. The value slice
// must match the row count.
func (t *Table) AddColumn(col string, vals []float64) error {
	if len(vals) != len(t.entries) {
		return fmt.Errorf("column %q: %d values for %d rows", col, len(vals), len(t.entries))
	}
	for i := range t.entries {
		if t.entries[i].Values == nil {
			t.entries[i].Values = make(map[string]float64)
		}
		t.entries[i].Values[col] = vals[i]
	}
	return nil
}

// Group is one segment of a table produced by GroupBy.
type Group struct {
	Name  string
	Table *Table
}

// GroupBy segments rows by the value of a label column. Groups come back
// sorted by name so trace order and marker symbols are deterministic.
func (t *Table) GroupBy(col string) ([]Group, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTable
	}
	byName := make(map[string][]Entry)
	for _, e := range t.entries {
		name, ok := e.Label(col)
		if !ok {
			return nil, fmt.Errorf("column %q: %w", col, ErrColumnNotFound)
		}
		byName[name] = append(byName[name], e)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	groups := make([]Group, len(names))
	for i, name := range names {
		groups[i] = Group{Name: name, Table: &Table{entries: byName[name]}}
	}
	return groups, nil
}

// Split partitions the table into article rows and response rows, copying
// both sides so callers can sort or extend them independently.
func (t *Table) Split() (articles, responses *Table) {
	articles = &Table{}
	responses = &Table{}
	for _, e := range t.entries {
		if e.Kind == KindResponse {
			responses.entries = append(responses.entries, e)
		} else {
			articles.entries = append(articles.entries, e)
		}
	}
	return articles.Copy(), responses.Copy()
}

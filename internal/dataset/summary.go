package dataset

import "time"

// ColumnStats summarizes one numeric column.
type ColumnStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summary describes a loaded dataset for the API surface.
type Summary struct {
	Rows      int                    `json:"rows"`
	Articles  int                    `json:"articles"`
	Responses int                    `json:"responses"`
	From      time.Time              `json:"from"`
	To        time.Time              `json:"to"`
	Columns   map[string]ColumnStats `json:"columns"`
}

// Summarize computes per-kind counts, the published-date span, and
// min/max/mean for every numeric column present in any row.
func (t *Table) Summarize() (*Summary, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTable
	}

	s := &Summary{
		Rows:    len(t.entries),
		From:    t.entries[0].PublishedDate,
		To:      t.entries[0].PublishedDate,
		Columns: make(map[string]ColumnStats),
	}

	type acc struct {
		min, max, sum float64
		n             int
	}
	cols := make(map[string]*acc)

	for _, e := range t.entries {
		if e.Kind == KindResponse {
			s.Responses++
		} else {
			s.Articles++
		}
		if e.PublishedDate.Before(s.From) {
			s.From = e.PublishedDate
		}
		if e.PublishedDate.After(s.To) {
			s.To = e.PublishedDate
		}
		for name, v := range e.Values {
			a, ok := cols[name]
			if !ok {
				a = &acc{min: v, max: v}
				cols[name] = a
			}
			if v < a.min {
				a.min = v
			}
			if v > a.max {
				a.max = v
			}
			a.sum += v
			a.n++
		}
	}

	for name, a := range cols {
		s.Columns[name] = ColumnStats{Min: a.min, Max: a.max, Mean: a.sum / float64(a.n)}
	}
	return s, nil
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Format identifies a dataset source format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// timestamp layouts accepted for published_date, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// LoadFile reads a dataset from path. With FormatAuto the format is
// resolved from the file extension.
func LoadFile(path string, format Format) (*Table, error) {
	if format == FormatAuto || format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = FormatCSV
		case ".xlsx":
			format = FormatXLSX
		case ".html", ".htm":
			format = FormatHTML
		default:
			return nil, fmt.Errorf("cannot infer dataset format from %q", path)
		}
	}

	switch format {
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return LoadCSV(f)
	case FormatXLSX:
		return LoadXLSX(path)
	case FormatHTML:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return ParseStatsHTML(f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

// LoadCSV reads a dataset from CSV. A UTF-8 BOM is stripped, header names
// are matched case-insensitively, and rows shorter than the header are
// skipped rather than failing the load.
func LoadCSV(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset CSV: %w", err)
	}
	return fromRecords(records)
}

// LoadXLSX reads a dataset from the first sheet of an Excel workbook.
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

// fromRecords converts a header row plus data rows into a table.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset has no data rows: %w", ErrEmptyTable)
	}

	header := records[0]
	dateCol, titleCol, responseCol := -1, -1, -1
	for i, col := range header {
		switch normalizeHeader(col) {
		case "published_date", "published", "date":
			dateCol = i
		case "title":
			titleCol = i
		case "response", "type":
			responseCol = i
		}
	}
	if dateCol == -1 {
		return nil, fmt.Errorf("column %q: %w", ColPublishedDate, ErrColumnNotFound)
	}
	if titleCol == -1 {
		return nil, fmt.Errorf("column %q: %w", ColTitle, ErrColumnNotFound)
	}

	var entries []Entry
	for _, record := range records[1:] {
		if len(record) <= dateCol || len(record) <= titleCol {
			continue
		}
		published, err := parseDate(strings.TrimSpace(record[dateCol]))
		if err != nil {
			continue
		}
		e := Entry{
			PublishedDate: published,
			Title:         strings.TrimSpace(record[titleCol]),
			Kind:          KindArticle,
			Values:        make(map[string]float64),
			Labels:        make(map[string]string),
		}
		if responseCol != -1 && len(record) > responseCol {
			if kind := strings.TrimSpace(record[responseCol]); kind != "" {
				e.Kind = strings.ToLower(kind)
			}
		}
		for i, cell := range record {
			if i == dateCol || i == titleCol || i == responseCol || i >= len(header) {
				continue
			}
			name := normalizeHeader(header[i])
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
				e.Values[name] = v
			} else {
				e.Labels[name] = cell
			}
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no parseable rows: %w", ErrEmptyTable)
	}
	return New(entries), nil
}

// normalizeHeader strips BOM and zero-width characters and snake-cases the
// column name so lookups are stable across export sources.
func normalizeHeader(col string) string {
	col = strings.TrimSpace(col)
	col = strings.TrimPrefix(col, "\uFEFF")
	col = strings.TrimLeft(col, "\u200B\u200C\u200D\u2060\uFEFF")
	col = strings.ToLower(strings.TrimSpace(col))
	return strings.ReplaceAll(col, " ", "_")
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

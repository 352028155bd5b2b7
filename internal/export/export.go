// Package export encodes the flat export rows as JSON, CSV or XLSX.
// The HTTP handler and the CLI both write through Encode.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Format names an export encoding.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat accepts a format name, case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return JSON, nil
	case JSON, CSV, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, s)
	}
}

// ContentType is the media type served for f.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Columns are the header row of the CSV and XLSX encodings and the keys of
// the JSON encoding.
var Columns = []string{
	"trip_id", "trip_title", "trip_start_date", "trip_end_date", "trip_status",
	"diary_title", "country", "location",
	"expense_date", "category", "amount", "currency", "memo",
}

// Record flattens a row into strings, in Columns order. Missing expense
// fields are empty strings.
func Record(r domain.ExportRow) []string {
	expenseDate := ""
	if r.ExpenseDate != nil {
		expenseDate = r.ExpenseDate.Format(time.DateOnly)
	}
	return []string{
		string(r.TripID),
		r.TripTitle,
		r.TripStartDate.Format(time.DateOnly),
		r.TripEndDate.Format(time.DateOnly),
		string(r.TripStatus),
		r.DiaryTitle,
		r.Country,
		r.Location,
		expenseDate,
		string(r.Category),
		r.Amount,
		r.Currency,
		r.Memo,
	}
}

// Encode writes rows to w in format f.
func Encode(w io.Writer, f Format, rows []domain.ExportRow) error {
	switch f {
	case CSV:
		return writeCSV(w, rows)
	case XLSX:
		return writeXLSX(w, rows)
	default:
		return writeJSON(w, rows)
	}
}

// writeJSON emits an array of objects keyed by Columns. Empty values are omitted.
func writeJSON(w io.Writer, rows []domain.ExportRow) error {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		obj := make(map[string]string, len(Columns))
		for i, v := range Record(r) {
			if v != "" {
				obj[Columns[i]] = v
			}
		}
		out = append(out, obj)
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("export.json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export.csv: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(Record(r)); err != nil {
			return fmt.Errorf("export.csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.csv: %w", err)
	}
	return nil
}

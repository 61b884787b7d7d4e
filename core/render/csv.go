// Package render provides output renderers for lexipipe reports.
// This file implements the CSV export: header word,frequency[,level], no index
// column, every retained row.
package render

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// CSVRenderer renders the full table as CSV.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes every row. A level column is added when the report was classified.
func (r *CSVRenderer) Render(report *core.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"word", "frequency"}
	if report.Leveled {
		header = append(header, "level")
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows(report) {
		rec := []string{row.Word, strconv.Itoa(row.Count)}
		if report.Leveled {
			rec = append(rec, string(row.Level))
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}

// ReadCSV parses a CSV export back into rows. leveled reports whether the
// export carried a level column.
func ReadCSV(rd io.Reader) (out []core.LeveledRow, leveled bool, err error) {
	cr := csv.NewReader(rd)
	header, err := cr.Read()
	if err != nil {
		return nil, false, fmt.Errorf("reading CSV header: %w", err)
	}
	switch strings.Join(header, ",") {
	case "word,frequency":
	case "word,frequency,level":
		leveled = true
	default:
		return nil, false, fmt.Errorf("unexpected CSV header %q", strings.Join(header, ","))
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading CSV: %w", err)
		}
		n, err := strconv.Atoi(rec[1])
		if err != nil || n < 0 {
			return nil, false, fmt.Errorf("bad frequency %q for %q", rec[1], rec[0])
		}
		row := core.LeveledRow{Word: rec[0], Count: n}
		if leveled {
			l, err := core.ParseLevel(rec[2])
			if err != nil {
				return nil, false, err
			}
			row.Level = l
		}
		out = append(out, row)
	}
	return out, leveled, nil
}

// rows returns what a renderer should show: the classified rows when the
// report was leveled, otherwise the frequency table with no levels.
func rows(report *core.Report) []core.LeveledRow {
	if report.Leveled {
		return report.Rows
	}
	out := make([]core.LeveledRow, len(report.Table.Rows))
	for i, r := range report.Table.Rows {
		out[i] = core.LeveledRow{Word: r.Word, Count: r.Count}
	}
	return out
}

// preview returns the first report.Preview rows (all when Preview <= 0).
func preview(report *core.Report) []core.LeveledRow {
	if report.Leveled {
		if report.Preview <= 0 || report.Preview >= len(report.Rows) {
			return report.Rows
		}
		return report.Rows[:report.Preview]
	}
	top := report.Table.Top(report.Preview)
	out := make([]core.LeveledRow, len(top))
	for i, r := range top {
		out[i] = core.LeveledRow{Word: r.Word, Count: r.Count}
	}
	return out
}

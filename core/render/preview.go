package render

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// TableRenderer draws the preview rows as a terminal table.
type TableRenderer struct{}

// NewTableRenderer creates a TableRenderer.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Render returns an ASCII table of the preview rows.
func (r *TableRenderer) Render(report *core.Report) ([]byte, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(tableHeader(report))
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment(columnAlignment(report))

	for _, rec := range tableRows(report, preview(report)) {
		table.Append(rec)
	}
	total := []string{"", strconv.Itoa(len(rows(report))) + " rows"}
	if report.Leveled {
		total = append(total, "")
	}
	table.SetFooter(total)
	table.Render()
	return buf.Bytes(), nil
}

// Extension returns the file extension for text output.
func (r *TableRenderer) Extension() string {
	return ".txt"
}

func columnAlignment(report *core.Report) []int {
	align := []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT}
	if report.Leveled {
		align = append(align, tablewriter.ALIGN_CENTER)
	}
	return align
}

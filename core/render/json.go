package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// JSONRenderer produces the full report as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// jsonReport adds derived totals to the report.
type jsonReport struct {
	*core.Report
	Tokens   int `json:"tokens"`
	Distinct int `json:"distinct_words"`
	Retained int `json:"retained_rows"`
}

// Render marshals the report.
func (r *JSONRenderer) Render(report *core.Report) ([]byte, error) {
	data, err := json.MarshalIndent(jsonReport{
		Report:   report,
		Tokens:   report.Table.Total(),
		Distinct: report.Table.Len(),
		Retained: len(rows(report)),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

package exporter

import (
	"encoding/csv"
	"strings"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/models"
)

// RenderCSV builds the CSV content for table: one header record, then
// one record per row with values verbatim.
func (e *Exporter) RenderCSV(table *models.Table) (string, error) {
	var sb strings.Builder
	csvWriter := csv.NewWriter(&sb)

	if err := csvWriter.Write(e.styledHeaders(table)); err != nil {
		return "", errors.NewIOError("failed to write CSV headers", err)
	}

	// Normalize row length to the header count.
	for _, row := range table.Rows {
		record := make([]string, len(table.Headers))
		copy(record, row)
		if err := csvWriter.Write(record); err != nil {
			return "", errors.NewIOError("failed to write CSV row", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return "", errors.NewIOError("failed to flush CSV writer", err)
	}
	return sb.String(), nil
}

// ExportCSV writes table to path as CSV.
func (e *Exporter) ExportCSV(table *models.Table, path string) (string, error) {
	content, err := e.RenderCSV(table)
	if err != nil {
		return "", err
	}
	return e.writeFile(path, content)
}

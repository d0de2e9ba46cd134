package exporter

import (
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/jsonutil"
	"github.com/tablify/tablify/internal/models"
)

// RenderJSON builds a JSON array with one flat object per row. Keys
// follow header order and every value is a plain string, so parsing the
// output again yields the same table.
func (e *Exporter) RenderJSON(table *models.Table) (string, error) {
	data, err := jsonutil.Encode(e.rowObjects(table), e.config.Export.PrettyJSON)
	if err != nil {
		return "", errors.NewIOError("failed to encode table as JSON", err)
	}
	return string(data), nil
}

// ExportJSON writes table to path as a JSON array of flat objects.
func (e *Exporter) ExportJSON(table *models.Table, path string) (string, error) {
	content, err := e.RenderJSON(table)
	if err != nil {
		return "", err
	}
	return e.writeFile(path, content)
}

// rowObjects pairs each row's cells with the styled headers, keeping
// header order.
func (e *Exporter) rowObjects(table *models.Table) []models.Value {
	headers := e.styledHeaders(table)
	rows := make([]models.Value, 0, len(table.Rows))
	for _, row := range table.Rows {
		obj := orderedmap.New()
		for i, header := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			obj.Set(header, cell)
		}
		rows = append(rows, obj)
	}
	return rows
}

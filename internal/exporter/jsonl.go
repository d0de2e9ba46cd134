package exporter

import (
	"strings"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/jsonutil"
	"github.com/tablify/tablify/internal/models"
)

// RenderJSONL builds JSON Lines content: one compact flat object per
// row, keys in header order.
func (e *Exporter) RenderJSONL(table *models.Table) (string, error) {
	var sb strings.Builder
	for _, row := range e.rowObjects(table) {
		line, err := jsonutil.CompactString(row)
		if err != nil {
			return "", errors.NewIOError("failed to encode table as JSON Lines", err)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// ExportJSONL writes table to path as JSON Lines.
func (e *Exporter) ExportJSONL(table *models.Table, path string) (string, error) {
	content, err := e.RenderJSONL(table)
	if err != nil {
		return "", err
	}
	return e.writeFile(path, content)
}

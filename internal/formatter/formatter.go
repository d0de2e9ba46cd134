package formatter

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tablify/tablify/internal/config"
	"github.com/tablify/tablify/internal/exporter"
	"github.com/tablify/tablify/internal/models"
)

// Formatter renders tables for the terminal
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter instance with default settings.
func NewFormatter() *Formatter {
	return &Formatter{config: config.NewConfig()}
}

// NewFormatterWithConfig creates a new Formatter with custom configuration.
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// FormatTable renders table with ASCII borders and a source caption.
// view.max_rows caps the rendered rows; the caption keeps the full
// count so truncation stays visible.
func (f *Formatter) FormatTable(table *models.Table) string {
	rows := table.Rows
	limit := f.config.View.MaxRows
	truncated := limit > 0 && len(rows) > limit
	if truncated {
		rows = rows[:limit]
	}

	var sb strings.Builder
	writer := tablewriter.NewWriter(&sb)
	writer.SetHeader(exporter.StyleHeaders(table.Headers, f.config.Export.HeaderStyle, f.config.Flatten.KeyDelimiter))
	writer.SetAutoFormatHeaders(false)
	writer.SetAutoWrapText(false)
	writer.SetAlignment(tablewriter.ALIGN_LEFT)
	writer.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	writer.AppendBulk(rows)
	writer.Render()

	// Caption goes below the table. tablewriter's own caption wraps to
	// the table width, which mangles long file names.
	caption := fmt.Sprintf("%s (%s, %d rows)", table.FileName, table.FileType, table.RowCount)
	if truncated {
		caption = fmt.Sprintf("%s, showing first %d", caption, limit)
	}
	sb.WriteString(caption)
	sb.WriteByte('\n')
	return sb.String()
}

// FormatInfo renders the one-screen summary used by `info`.
func (f *Formatter) FormatInfo(table *models.Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "File:    %s\n", table.FileName)
	fmt.Fprintf(&sb, "Type:    %s\n", table.FileType)
	fmt.Fprintf(&sb, "Rows:    %d\n", table.RowCount)
	fmt.Fprintf(&sb, "Columns: %d\n", len(table.Headers))
	sb.WriteString("Headers:\n")
	for i, header := range table.Headers {
		fmt.Fprintf(&sb, "  %2d. %s\n", i+1, header)
	}
	return sb.String()
}

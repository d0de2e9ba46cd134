package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"

	"github.com/tablify/tablify/internal/config"
	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/log"
	"github.com/tablify/tablify/internal/models"
)

// Exporter writes tables out as CSV, JSON or JSON Lines. All writes go
// through the injected filesystem, so tests run against memory maps.
// Header names may be restyled on the way out; cell values never change.
type Exporter struct {
	fsys   afero.Fs
	config *config.Config
	logger log.Logger
}

// NewExporter creates a new Exporter with default settings.
func NewExporter(fsys afero.Fs) *Exporter {
	return &Exporter{
		fsys:   fsys,
		config: config.NewConfig(),
		logger: log.NewNopLogger(),
	}
}

// NewExporterWithConfig creates a new Exporter with custom configuration
// and logging.
func NewExporterWithConfig(fsys afero.Fs, cfg *config.Config, logger log.Logger) *Exporter {
	return &Exporter{
		fsys:   fsys,
		config: cfg,
		logger: logger,
	}
}

// Export renders table in the given format and writes it to path,
// returning a confirmation message for the user.
func (e *Exporter) Export(table *models.Table, path string, format models.FileType) (string, error) {
	switch format {
	case models.FileTypeCSV:
		return e.ExportCSV(table, path)
	case models.FileTypeJSON:
		return e.ExportJSON(table, path)
	case models.FileTypeJSONL:
		return e.ExportJSONL(table, path)
	default:
		return "", errors.NewInputError(fmt.Sprintf("cannot export to %s", format), errors.ErrUnknownFormat)
	}
}

// Render builds the export content for format without writing it
// anywhere. The CLI uses it to print to stdout when no output path is
// given.
func (e *Exporter) Render(table *models.Table, format models.FileType) (string, error) {
	switch format {
	case models.FileTypeCSV:
		return e.RenderCSV(table)
	case models.FileTypeJSON:
		return e.RenderJSON(table)
	case models.FileTypeJSONL:
		return e.RenderJSONL(table)
	default:
		return "", errors.NewInputError(fmt.Sprintf("cannot export to %s", format), errors.ErrUnknownFormat)
	}
}

// DetectExportFormat maps an output path's extension to an export
// format. Parquet is an input format only.
func DetectExportFormat(path string) (models.FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FileTypeCSV, nil
	case ".json":
		return models.FileTypeJSON, nil
	case ".jsonl", ".ndjson":
		return models.FileTypeJSONL, nil
	case ".parquet", ".pq":
		return "", errors.NewInputError("exporting to Parquet is not supported", errors.ErrUnknownFormat)
	default:
		return "", errors.NewInputError(fmt.Sprintf("cannot infer an export format from '%s'", path), errors.ErrUnknownFormat)
	}
}

// StyleHeaders restyles header names. Delimiter-joined path segments
// are fused with underscores first, so a nested column like "user.name"
// restyles as one name rather than two.
func StyleHeaders(headers []string, style, delimiter string) []string {
	if style == "" || style == "original" {
		return headers
	}
	styled := make([]string, len(headers))
	for i, header := range headers {
		fused := strings.ReplaceAll(header, delimiter, "_")
		switch style {
		case "snake":
			styled[i] = strcase.ToSnake(fused)
		case "camel":
			styled[i] = strcase.ToLowerCamel(fused)
		case "kebab":
			styled[i] = strcase.ToKebab(fused)
		case "screaming":
			styled[i] = strcase.ToScreamingSnake(fused)
		default:
			styled[i] = header
		}
	}
	return styled
}

func (e *Exporter) styledHeaders(table *models.Table) []string {
	return StyleHeaders(table.Headers, e.config.Export.HeaderStyle, e.config.Flatten.KeyDelimiter)
}

func (e *Exporter) writeFile(path, content string) (string, error) {
	if err := afero.WriteFile(e.fsys, path, []byte(content), 0o644); err != nil {
		return "", errors.NewIOError(fmt.Sprintf("failed to write file '%s'", path), err)
	}
	e.logger.Debugf("wrote %d bytes to %s", len(content), path)
	return fmt.Sprintf("Successfully exported to %s", path), nil
}

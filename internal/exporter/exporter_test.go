package exporter

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablify/tablify/internal/analyzer"
	"github.com/tablify/tablify/internal/config"
	apperrors "github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/log"
	"github.com/tablify/tablify/internal/models"
	"github.com/tablify/tablify/internal/parser"
)

func testTable() *models.Table {
	return models.NewTable(
		[]string{"name", "age"},
		[][]string{{"Ada", "36"}, {"Grace", ""}},
		"people.json",
		models.FileTypeJSON,
	)
}

func TestExportCSV(t *testing.T) {
	fsys := afero.NewMemMapFs()
	exporter := NewExporter(fsys)

	msg, err := exporter.ExportCSV(testTable(), "/out.csv")
	require.NoError(t, err)
	assert.Equal(t, "Successfully exported to /out.csv", msg)

	content, err := afero.ReadFile(fsys, "/out.csv")
	require.NoError(t, err)
	assert.Equal(t, "name,age\nAda,36\nGrace,\n", string(content))
}

func TestRenderCSV_QuotesSpecialValues(t *testing.T) {
	table := models.NewTable(
		[]string{"name", "payload"},
		[][]string{{"Smith, Jane", `{"a":1}`}},
		"", models.FileTypeJSON,
	)

	content, err := NewExporter(afero.NewMemMapFs()).RenderCSV(table)
	require.NoError(t, err)
	assert.Equal(t, "name,payload\n\"Smith, Jane\",\"{\"\"a\"\":1}\"\n", content)
}

func TestRenderCSV_NormalizesShortRows(t *testing.T) {
	table := models.NewTable(
		[]string{"a", "b", "c"},
		[][]string{{"1"}},
		"", models.FileTypeJSON,
	)

	content, err := NewExporter(afero.NewMemMapFs()).RenderCSV(table)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,,\n", content)
}

func TestExportJSON_Pretty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	exporter := NewExporter(fsys)

	msg, err := exporter.ExportJSON(testTable(), "/out.json")
	require.NoError(t, err)
	assert.Equal(t, "Successfully exported to /out.json", msg)

	content, err := afero.ReadFile(fsys, "/out.json")
	require.NoError(t, err)
	expected := `[
  {
    "name": "Ada",
    "age": "36"
  },
  {
    "name": "Grace",
    "age": ""
  }
]
`
	assert.Equal(t, expected, string(content))
}

func TestExportJSON_Compact(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Export.PrettyJSON = false

	fsys := afero.NewMemMapFs()
	exporter := NewExporterWithConfig(fsys, cfg, log.NewNopLogger())

	_, err := exporter.ExportJSON(testTable(), "/out.json")
	require.NoError(t, err)

	content, err := afero.ReadFile(fsys, "/out.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Ada","age":"36"},{"name":"Grace","age":""}]`+"\n", string(content))
}

func TestRenderJSON_EmptyTable(t *testing.T) {
	table := models.NewTable([]string{"a"}, nil, "", models.FileTypeCSV)

	content, err := NewExporter(afero.NewMemMapFs()).RenderJSON(table)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", content)
}

func TestExportJSONL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	exporter := NewExporter(fsys)

	msg, err := exporter.ExportJSONL(testTable(), "/out.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "Successfully exported to /out.jsonl", msg)

	content, err := afero.ReadFile(fsys, "/out.jsonl")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","age":"36"}`+"\n"+`{"name":"Grace","age":""}`+"\n", string(content))
}

func TestExportJSON_RoundTrip(t *testing.T) {
	jsonInput := `{"users": [{"profile": {"name": "Ada"}, "id": 1}, {"id": 2, "extra": [1, 2]}]}`

	doc, err := parser.ParseJSONString(jsonInput)
	require.NoError(t, err)
	table, err := analyzer.NewAnalyzer().Tabulate(doc)
	require.NoError(t, err)

	content, err := NewExporter(afero.NewMemMapFs()).RenderJSON(table)
	require.NoError(t, err)

	redoc, err := parser.ParseJSONString(content)
	require.NoError(t, err)
	retable, err := analyzer.NewAnalyzer().Tabulate(redoc)
	require.NoError(t, err)

	assert.Equal(t, table.Headers, retable.Headers)
	assert.Equal(t, table.Rows, retable.Rows)
}

func TestStyleHeaders(t *testing.T) {
	headers := []string{"user.name", "isActive", "Name"}

	tests := []struct {
		style    string
		expected []string
	}{
		{style: "original", expected: []string{"user.name", "isActive", "Name"}},
		{style: "snake", expected: []string{"user_name", "is_active", "name"}},
		{style: "camel", expected: []string{"userName", "isActive", "name"}},
		{style: "kebab", expected: []string{"user-name", "is-active", "name"}},
		{style: "screaming", expected: []string{"USER_NAME", "IS_ACTIVE", "NAME"}},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.expected, StyleHeaders(headers, tt.style, "."))
		})
	}
}

func TestExportCSV_HeaderStyleLeavesCellsAlone(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Export.HeaderStyle = "snake"

	table := models.NewTable(
		[]string{"user.name", "isActive"},
		[][]string{{"Ada", "userAlpha"}},
		"", models.FileTypeJSON,
	)

	content, err := NewExporterWithConfig(afero.NewMemMapFs(), cfg, log.NewNopLogger()).RenderCSV(table)
	require.NoError(t, err)
	assert.Equal(t, "user_name,is_active\nAda,userAlpha\n", content)
}

func TestDetectExportFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected models.FileType
	}{
		{path: "out.csv", expected: models.FileTypeCSV},
		{path: "OUT.JSON", expected: models.FileTypeJSON},
		{path: "rows.jsonl", expected: models.FileTypeJSONL},
		{path: "rows.ndjson", expected: models.FileTypeJSONL},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := DetectExportFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectExportFormat_Unsupported(t *testing.T) {
	_, err := DetectExportFormat("out.parquet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	_, err = DetectExportFormat("out.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownFormat)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := NewExporter(afero.NewMemMapFs()).Export(testTable(), "/out", models.FileTypeParquet)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInput, appErr.Type)
}

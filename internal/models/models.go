package models

import "path/filepath"

// Value is a generic type to represent one node of a decoded document.
// A node is always one of: nil, bool, string, json.Number, []Value, or
// *orderedmap.OrderedMap. No other dynamic type may enter the engine.
type Value = any

// FileType identifies the source format of a parsed table.
type FileType string

const (
	FileTypeCSV     FileType = "CSV"
	FileTypeJSON    FileType = "JSON"
	FileTypeJSONL   FileType = "JSONL"
	FileTypeParquet FileType = "Parquet"
)

// FlatPair is one flattened column/cell pair. Pair order is significant
// and follows depth-first document order.
type FlatPair struct {
	Key   string
	Value string
}

// Table is the uniform result of every parser: insertion-ordered headers
// and rectangular rows of strings. Every row has exactly len(Headers)
// cells; missing values are "".
type Table struct {
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
	FileName string     `json:"file_name"`
	FileType FileType   `json:"file_type"`
}

// NewTable builds a Table from headers and rows, deriving RowCount and
// defaulting FileName to "unknown" when fileName is empty.
func NewTable(headers []string, rows [][]string, fileName string, fileType FileType) *Table {
	if fileName == "" {
		fileName = "unknown"
	}
	return &Table{
		Headers:  headers,
		Rows:     rows,
		RowCount: len(rows),
		FileName: fileName,
		FileType: fileType,
	}
}

// FileNameFromPath returns the base name of path, or "unknown" when the
// path carries no usable name (stdin, empty path).
func FileNameFromPath(path string) string {
	if path == "" || path == "-" {
		return "unknown"
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "unknown"
	}
	return name
}

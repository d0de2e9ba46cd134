package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	headers := []string{"Name", "age"}
	rows := [][]string{{"Alice", "30"}, {"Bob", "25"}}

	table := NewTable(headers, rows, "people.json", FileTypeJSON)

	assert.Equal(t, headers, table.Headers)
	assert.Equal(t, rows, table.Rows)
	assert.Equal(t, 2, table.RowCount)
	assert.Equal(t, "people.json", table.FileName)
	assert.Equal(t, FileTypeJSON, table.FileType)
}

func TestNewTable_DefaultsFileName(t *testing.T) {
	table := NewTable([]string{"a"}, nil, "", FileTypeCSV)

	assert.Equal(t, "unknown", table.FileName)
	assert.Equal(t, 0, table.RowCount)
}

func TestFileNameFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "plain file", path: "data.csv", expected: "data.csv"},
		{name: "nested path", path: "/tmp/exports/data.json", expected: "data.json"},
		{name: "relative path", path: "./out/events.jsonl", expected: "events.jsonl"},
		{name: "empty path", path: "", expected: "unknown"},
		{name: "stdin marker", path: "-", expected: "unknown"},
		{name: "bare dot", path: ".", expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileNameFromPath(tt.path))
		})
	}
}

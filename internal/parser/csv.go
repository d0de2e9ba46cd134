package parser

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/spf13/afero"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/models"
)

// ParseCSV reads CSV content into a Table. The first record is the
// header row; remaining records become rows verbatim. The reader
// enforces a uniform field count, so ragged rows fail the parse.
func ParseCSV(reader io.Reader, fileName string) (*models.Table, error) {
	r := csv.NewReader(reader)

	headers, err := r.Read()
	if err == io.EOF {
		return nil, errors.NewEmptyInputError("CSV file is empty", errors.ErrFileEmpty)
	}
	if err != nil {
		return nil, errors.NewParseError("failed to read CSV headers", err)
	}

	rows := make([][]string, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParseError("failed to read CSV record", err)
		}
		rows = append(rows, record)
	}

	return models.NewTable(headers, rows, fileName, models.FileTypeCSV), nil
}

// ParseCSVFile parses the CSV file at path.
func ParseCSVFile(fsys afero.Fs, path string) (*models.Table, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseCSV(bytes.NewReader(data), models.FileNameFromPath(path))
}

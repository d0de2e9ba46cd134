package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/jsonutil"
	"github.com/tablify/tablify/internal/models"
)

// JSONL lines can outgrow the scanner's default token size.
const maxLineSize = 4 << 20

// ParseJSONL reads JSON Lines content into a Table. Blank lines are
// skipped. The first non-blank line must be a JSON object and its keys,
// in order, become the headers; every later line must be an object too.
// Line numbers in errors are physical, counting blanks.
func ParseJSONL(reader io.Reader, fileName string) (*models.Table, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var headers []string
	rows := make([][]string, 0)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := decodeDocument([]byte(line))
		if err != nil {
			return nil, errors.NewParseError(
				fmt.Sprintf("failed to parse line %d", lineNo),
				err,
			)
		}
		obj, ok := value.(*orderedmap.OrderedMap)
		if !ok {
			return nil, errors.NewShapeError(
				fmt.Sprintf("line %d is not a JSON object", lineNo),
				errors.ErrLineNotObject,
			)
		}

		if headers == nil {
			// Keys() exposes the map's own slice, so copy it.
			headers = append([]string(nil), obj.Keys()...)
		}

		row := make([]string, len(headers))
		for i, header := range headers {
			cell, found := obj.Get(header)
			if !found {
				continue
			}
			text, err := cellText(cell)
			if err != nil {
				return nil, errors.NewParseError(
					fmt.Sprintf("failed to render line %d", lineNo),
					err,
				)
			}
			row[i] = text
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIOError("failed to read JSONL input", err)
	}

	if headers == nil {
		return nil, errors.NewEmptyInputError("JSONL file is empty", errors.ErrEmptyInput)
	}

	return models.NewTable(headers, rows, fileName, models.FileTypeJSONL), nil
}

// ParseJSONLFile parses the JSON Lines file at path.
func ParseJSONLFile(fsys afero.Fs, path string) (*models.Table, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseJSONL(bytes.NewReader(data), models.FileNameFromPath(path))
}

// cellText renders one JSONL field: scalars use their canonical text,
// nested objects and arrays are embedded as compact JSON.
func cellText(value models.Value) (string, error) {
	switch value.(type) {
	case *orderedmap.OrderedMap, []models.Value:
		return jsonutil.CompactString(value)
	default:
		return cast.ToString(value), nil
	}
}

package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	stderrors "errors"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/jsonutil"
	"github.com/tablify/tablify/internal/models"
)

// ParseParquet reads Parquet content held in memory into a Table.
// Stdin and URL ingestion land here, since the format needs random
// access and a known size.
func ParseParquet(data []byte, fileName string) (*models.Table, error) {
	if len(data) == 0 {
		return nil, errors.NewEmptyInputError("Parquet input is empty", errors.ErrFileEmpty)
	}

	pqFile, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewParseError("failed to read Parquet metadata", err)
	}
	return tableFromParquet(pqFile, fileName)
}

// ParseParquetFile reads the Parquet file at path into a Table.
func ParseParquetFile(fsys afero.Fs, path string) (*models.Table, error) {
	file, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(fmt.Sprintf("file '%s' not found", path), err)
		}
		return nil, errors.NewIOError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to stat file '%s'", path), err)
	}
	if stat.Size() == 0 {
		return nil, errors.NewEmptyInputError(
			fmt.Sprintf("file '%s' is empty", path),
			errors.ErrFileEmpty,
		)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, errors.NewParseError("failed to read Parquet metadata", err)
	}
	return tableFromParquet(pqFile, models.FileNameFromPath(path))
}

// tableFromParquet renders the file's rows as text. Headers follow the
// schema's top-level field order; a schema with zero rows yields a
// valid zero-row table.
func tableFromParquet(pqFile *parquet.File, fileName string) (*models.Table, error) {
	fields := pqFile.Schema().Fields()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Name()
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	rows := make([][]string, 0)
	for {
		record := map[string]any{}
		err := reader.Read(&record)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, errors.NewParseError("failed to read Parquet row", err)
		}

		row := make([]string, len(headers))
		for i, header := range headers {
			text, err := parquetCellText(record[header])
			if err != nil {
				return nil, errors.NewParseError("failed to render Parquet row", err)
			}
			row[i] = text
		}
		rows = append(rows, row)
	}

	return models.NewTable(headers, rows, fileName, models.FileTypeParquet), nil
}

// parquetCellText renders one reconstructed Parquet value as cell text.
// Scalars use the shared coercions; nested group and list columns are
// embedded as compact JSON, like JSONL cells.
func parquetCellText(value any) (string, error) {
	switch t := value.(type) {
	case nil:
		return "", nil
	case []byte:
		return string(t), nil
	case string, bool, int32, int64, float32, float64:
		return cast.ToString(t), nil
	case map[string]any, []any:
		return jsonutil.CompactString(parquetNode(t))
	default:
		return fmt.Sprintf("%v", t), nil
	}
}

// parquetNode converts a reconstructed group or list into a document
// node. Reconstruction loses column order, so map keys are sorted.
func parquetNode(value any) models.Value {
	switch t := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := orderedmap.New()
		for _, key := range keys {
			obj.Set(key, parquetNode(t[key]))
		}
		return obj
	case []any:
		arr := make([]models.Value, len(t))
		for i, elem := range t {
			arr[i] = parquetNode(elem)
		}
		return arr
	case nil, bool, string:
		return t
	case []byte:
		return string(t)
	case int32, int64, float32, float64:
		return json.Number(cast.ToString(t))
	default:
		return cast.ToString(value)
	}
}

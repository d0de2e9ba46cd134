package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte order mark from text input.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// DetectFileType maps a file extension to the FileType it carries.
func DetectFileType(path string) (models.FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FileTypeCSV, nil
	case ".json":
		return models.FileTypeJSON, nil
	case ".jsonl", ".ndjson":
		return models.FileTypeJSONL, nil
	case ".parquet", ".pq":
		return models.FileTypeParquet, nil
	default:
		return "", errors.NewInputError(
			fmt.Sprintf("cannot determine the format of '%s'", path),
			errors.ErrUnknownFormat,
		)
	}
}

// readFile loads a data file through fsys, distinguishing missing files
// from unreadable ones and rejecting byte-empty files early. A UTF-8
// BOM is stripped so spreadsheet exports parse cleanly.
func readFile(fsys afero.Fs, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewInputError("file path is empty", nil)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(
				fmt.Sprintf("file '%s' not found", path),
				err,
			)
		}
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to read file '%s'", path),
			err,
		)
	}

	if len(data) == 0 {
		return nil, errors.NewEmptyInputError(
			fmt.Sprintf("file '%s' is empty", path),
			errors.ErrFileEmpty,
		)
	}

	return StripBOM(data), nil
}

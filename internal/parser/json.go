package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	stderrors "errors"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/models"
)

var errTrailingData = stderrors.New("unexpected trailing data after the JSON document")

// ParseJSON decodes one JSON document from reader. Object key order and
// number lexemes are preserved: objects decode to *orderedmap.OrderedMap
// and numbers to json.Number, never float64.
func ParseJSON(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewIOError("failed to read input", err)
	}
	return parseJSONData(data)
}

// ParseJSONString parses a JSON document held in a string.
func ParseJSONString(jsonString string) (models.Value, error) {
	return parseJSONData([]byte(jsonString))
}

// ParseJSONFile parses the JSON document in the file at path.
func ParseJSONFile(fsys afero.Fs, path string) (models.Value, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return parseJSONData(data)
}

func parseJSONData(data []byte) (models.Value, error) {
	data = StripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewEmptyInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	root, err := decodeDocument(data)
	if err != nil {
		return nil, classifyJSONError(err)
	}
	return root, nil
}

// decodeDocument parses exactly one JSON document from data. Errors are
// raw decoder errors; callers classify them.
func decodeDocument(data []byte) (models.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers keep their source text

	root, err := decodeValue(decoder)
	if err != nil {
		return nil, err
	}

	// Anything but whitespace after the document is an error. More
	// treats a stray ']' or '}' as end of input, so require EOF from
	// the next token read instead.
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return root, nil
}

// decodeValue reads one complete value from the token stream.
func decodeValue(decoder *json.Decoder) (models.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		}
		// Closing delimiters are consumed by decodeObject/decodeArray,
		// so reaching one here means the stream is malformed.
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	default:
		// nil, bool, string or json.Number
		return t, nil
	}
}

// decodeObject builds an ordered map from the tokens of a JSON object.
// A duplicated key keeps its first position and takes the last value,
// matching how ordered JSON parsers treat repeated keys.
func decodeObject(decoder *json.Decoder) (*orderedmap.OrderedMap, error) {
	obj := orderedmap.New()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token %v", keyToken)
		}

		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}

	// Consume the closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(decoder *json.Decoder) ([]models.Value, error) {
	arr := make([]models.Value, 0)
	for decoder.More() {
		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	// Consume the closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func classifyJSONError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParseError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			err,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.NewParseError("unexpected end of JSON input", err)
	}
	if stderrors.Is(err, errTrailingData) {
		return errors.NewParseError("unexpected trailing data after the JSON document", err)
	}
	return errors.NewParseError("failed to parse JSON", err)
}

package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// CompactString renders a decoded document node as compact JSON text.
// Object key order is preserved and numbers keep their source lexemes,
// so the text matches the document as it was written. HTML characters
// are not escaped.
func CompactString(v any) (string, error) {
	var buf bytes.Buffer
	if err := writeCompact(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Encode renders a node as JSON bytes with a trailing newline, 2-space
// indented when pretty is set.
func Encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCompact(&buf, v); err != nil {
		return nil, err
	}
	if !pretty {
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeCompact(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(t.String())
	case string:
		return writeString(buf, t)
	case []any:
		buf.WriteByte('[')
		for i, elem := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCompact(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *orderedmap.OrderedMap:
		buf.WriteByte('{')
		for i, key := range t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			value, _ := t.Get(key)
			if err := writeCompact(buf, value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode value of type %T", v)
	}
	return nil
}

// writeString appends s as a JSON string. The stdlib encoder handles
// escaping; its trailing newline is trimmed off.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

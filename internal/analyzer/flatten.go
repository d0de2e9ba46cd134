package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/tablify/tablify/internal/jsonutil"
	"github.com/tablify/tablify/internal/models"
)

// Flatten collapses one document node into ordered column/value pairs.
// Objects recurse depth-first with delimiter-joined keys, scalars emit
// a single pair, arrays become one cell. Pair order follows document
// order exactly.
func (a *Analyzer) Flatten(prefix string, node models.Value) ([]models.FlatPair, error) {
	pairs := make([]models.FlatPair, 0)
	if err := a.flattenInto(prefix, node, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (a *Analyzer) flattenInto(prefix string, node models.Value, pairs *[]models.FlatPair) error {
	switch v := node.(type) {
	case *orderedmap.OrderedMap:
		for _, key := range v.Keys() {
			value, _ := v.Get(key)
			childPrefix := key
			if prefix != "" {
				childPrefix = prefix + a.config.Flatten.KeyDelimiter + key
			}
			if err := a.flattenInto(childPrefix, value, pairs); err != nil {
				return err
			}
		}
		return nil
	case []models.Value:
		text, err := a.arrayText(v)
		if err != nil {
			return err
		}
		*pairs = append(*pairs, models.FlatPair{Key: prefix, Value: text})
		return nil
	case nil, bool, string, json.Number:
		*pairs = append(*pairs, models.FlatPair{Key: prefix, Value: leafText(node)})
		return nil
	default:
		return fmt.Errorf("unexpected document value type: %T", v)
	}
}

// arrayText renders an array cell. Short all-scalar arrays join into
// one readable string; longer or nested ones embed as compact JSON.
func (a *Analyzer) arrayText(arr []models.Value) (string, error) {
	if len(arr) <= a.config.Flatten.MaxInlineArray && allScalars(arr) {
		parts := make([]string, len(arr))
		for i, elem := range arr {
			parts[i] = elementText(elem)
		}
		return strings.Join(parts, a.config.Flatten.ArraySeparator), nil
	}
	return jsonutil.CompactString(arr)
}

func allScalars(arr []models.Value) bool {
	for _, elem := range arr {
		switch elem.(type) {
		case *orderedmap.OrderedMap, []models.Value:
			return false
		}
	}
	return true
}

// leafText renders a scalar leaf: strings verbatim, numbers by their
// source text, booleans as true/false, null as the empty string.
func leafText(v models.Value) string {
	return cast.ToString(v)
}

// elementText renders one element of a joined array. Unlike a leaf, a
// null element stays visible as its canonical text "null".
func elementText(v models.Value) string {
	if v == nil {
		return "null"
	}
	return cast.ToString(v)
}

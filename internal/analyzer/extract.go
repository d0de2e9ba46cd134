package analyzer

import (
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/models"
)

// objectRule is one heuristic for locating the row set inside an
// object-rooted document. Rules run top to bottom and the first match
// wins, so their order is part of the engine's contract.
type objectRule struct {
	name  string
	apply func(a *Analyzer, doc *orderedmap.OrderedMap) ([]models.Value, bool)
}

var objectRules = []objectRule{
	{name: "dictionary-of-objects", apply: (*Analyzer).dictionaryRows},
	{name: "largest-array", apply: (*Analyzer).largestArrayRows},
	{name: "single-object", apply: (*Analyzer).singleObjectRows},
}

// ExtractRows locates the row set inside a decoded document. A root
// array supplies its elements directly; a root object is matched
// against the ordered rule list. Scalar roots cannot become tables.
func (a *Analyzer) ExtractRows(doc models.Value) ([]models.Value, error) {
	switch v := doc.(type) {
	case []models.Value:
		if len(v) == 0 {
			return nil, errors.NewEmptyInputError("JSON array is empty", errors.ErrEmptyArray)
		}
		a.logger.Debugf("extract: root array supplies %d rows", len(v))
		return v, nil
	case *orderedmap.OrderedMap:
		for _, rule := range objectRules {
			if rows, ok := rule.apply(a, v); ok {
				a.logger.Debugf("extract: rule %q matched, %d rows", rule.name, len(rows))
				return rows, nil
			}
		}
		// single-object matches every object, so this is unreachable.
		return nil, errors.NewShapeError("no extraction rule matched", nil)
	default:
		return nil, errors.NewShapeError("JSON must be an object or an array of objects", errors.ErrNotTabular)
	}
}

// dictionaryRows synthesizes rows from documents shaped like
// {"alpha": {...}, "beta": {...}}: more than one object value, and
// object values making up at least half the keys. Each object becomes
// a row carrying its key under the name column.
func (a *Analyzer) dictionaryRows(doc *orderedmap.OrderedMap) ([]models.Value, bool) {
	keys := doc.Keys()
	objCount := 0
	for _, key := range keys {
		if value, _ := doc.Get(key); isObject(value) {
			objCount++
		}
	}
	if objCount <= 1 || 2*objCount < len(keys) {
		return nil, false
	}

	rows := make([]models.Value, 0, objCount)
	for _, key := range keys {
		value, _ := doc.Get(key)
		obj, ok := value.(*orderedmap.OrderedMap)
		if !ok {
			continue
		}
		row := orderedmap.New()
		row.Set(a.config.Extract.NameColumn, key)
		for _, innerKey := range obj.Keys() {
			innerValue, _ := obj.Get(innerKey)
			// An inner field named like the name column overwrites the
			// synthesized value but keeps the front position.
			row.Set(innerKey, innerValue)
		}
		rows = append(rows, row)
	}
	return rows, true
}

// largestArrayRows picks the longest top-level array whose first
// element is an object. Equal lengths resolve to the earliest key in
// document order, keeping the choice deterministic.
func (a *Analyzer) largestArrayRows(doc *orderedmap.OrderedMap) ([]models.Value, bool) {
	var best []models.Value
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		arr, ok := value.([]models.Value)
		if !ok || len(arr) == 0 || !isObject(arr[0]) {
			continue
		}
		if len(arr) > len(best) {
			best = arr
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// singleObjectRows treats the document itself as the only row.
func (a *Analyzer) singleObjectRows(doc *orderedmap.OrderedMap) ([]models.Value, bool) {
	return []models.Value{doc}, true
}

func isObject(v models.Value) bool {
	_, ok := v.(*orderedmap.OrderedMap)
	return ok
}

package analyzer

import (
	"github.com/tablify/tablify/internal/config"
	"github.com/tablify/tablify/internal/log"
	"github.com/tablify/tablify/internal/models"
)

// Analyzer turns decoded JSON documents into tables. It locates the
// row set, flattens each row into column/value pairs and aligns the
// rows under a shared header set.
type Analyzer struct {
	// config holds the flattening and extraction knobs
	config *config.Config
	// logger reports which heuristics fire, at debug level
	logger log.Logger
}

// NewAnalyzer creates a new Analyzer instance with default settings.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: config.NewConfig(),
		logger: log.NewNopLogger(),
	}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom
// configuration and logging.
func NewAnalyzerWithConfig(cfg *config.Config, logger log.Logger) *Analyzer {
	return &Analyzer{
		config: cfg,
		logger: logger,
	}
}

// Tabulate converts a decoded document into a Table. Rows are located
// by the extraction rules, flattened depth-first, and aligned under an
// insertion-ordered union of their keys. Cells for keys a row lacks are
// empty strings, so the result is always rectangular.
func (a *Analyzer) Tabulate(doc models.Value) (*models.Table, error) {
	rows, err := a.ExtractRows(doc)
	if err != nil {
		return nil, err
	}

	// Union the headers in first-seen order while flattening.
	flattened := make([][]models.FlatPair, 0, len(rows))
	headers := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		pairs, err := a.Flatten("", row)
		if err != nil {
			return nil, err
		}
		flattened = append(flattened, pairs)
		for _, pair := range pairs {
			if _, ok := seen[pair.Key]; !ok {
				seen[pair.Key] = struct{}{}
				headers = append(headers, pair.Key)
			}
		}
	}

	headers = a.promoteNameColumn(headers)

	tableRows := make([][]string, len(flattened))
	for i, pairs := range flattened {
		cells := make(map[string]string, len(pairs))
		for _, pair := range pairs {
			// Later pairs win when nesting collides, e.g. {"a":{"b":1},"a.b":2}.
			cells[pair.Key] = pair.Value
		}
		row := make([]string, len(headers))
		for j, header := range headers {
			row[j] = cells[header]
		}
		tableRows[i] = row
	}

	a.logger.Debugf("assembled table with %d columns and %d rows", len(headers), len(tableRows))
	return models.NewTable(headers, tableRows, "", models.FileTypeJSON), nil
}

// promoteNameColumn moves the name column to the front when it appears
// at any later position. The relative order of the other headers is
// unchanged.
func (a *Analyzer) promoteNameColumn(headers []string) []string {
	name := a.config.Extract.NameColumn
	for i, header := range headers {
		if header != name {
			continue
		}
		if i == 0 {
			return headers
		}
		promoted := make([]string, 0, len(headers))
		promoted = append(promoted, name)
		promoted = append(promoted, headers[:i]...)
		promoted = append(promoted, headers[i+1:]...)
		return promoted
	}
	return headers
}

package huek

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Aggregator computes the output table for a set of catchments.
//
// Catchments are processed one after another. For every catchment all
// extractors run in vocabulary order, each clipping the base map on its
// own, and their rows are merged into a single Row.
type Aggregator struct {
	vocab      *Vocabulary
	extractors []*Extractor
	opts       AggregateOptions
	logger     *zap.Logger
}

// NewAggregator creates an aggregator for a vocabulary.
func NewAggregator(vocab *Vocabulary, opts AggregateOptions) (*Aggregator, error) {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if err := vocab.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vocabulary: %w", err)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Degenerate == "" {
		opts.Degenerate = DegenerateFail
	}
	if opts.IndexName == "" {
		opts.IndexName = "gauge_id"
	}
	if opts.Decimals <= 0 {
		opts.Decimals = 2
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	extractors := make([]*Extractor, len(vocab.Attributes))
	for i, a := range vocab.Attributes {
		extractors[i] = NewExtractor(a, vocab.Shared, opts.Tolerance)
	}

	return &Aggregator{
		vocab:      vocab,
		extractors: extractors,
		opts:       opts,
		logger:     logger,
	}, nil
}

// Columns returns the output columns, without the index column.
func (a *Aggregator) Columns() []string {
	return a.vocab.Columns()
}

// Aggregate reprojects the catchments into the base map CRS and computes one
// row per catchment, in catchment order. Any consistency violation or shared
// category mismatch aborts the run; the values are rounded at the end.
//
// The context is checked between catchments.
func (a *Aggregator) Aggregate(ctx context.Context, base, catchments *Layer, idField string) (*Table, error) {
	projected, err := catchments.Reproject(base.CRS())
	if err != nil {
		return nil, err
	}

	list, err := projected.Catchments(idField)
	if err != nil {
		return nil, err
	}

	table := &Table{
		IndexName: a.opts.IndexName,
		Columns:   a.Columns(),
		Rows:      make([]Row, 0, len(list)),
	}

	for i, c := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := a.AggregateCatchment(base, c)
		var degenerate *DegenerateCatchmentError
		switch {
		case errors.As(err, &degenerate) && a.opts.Degenerate == DegenerateExclude:
			a.logger.Warn("catchment excluded: no overlap with base map", zap.String("catchment", c.ID))
			table.Excluded = append(table.Excluded, c.ID)
		case err != nil:
			return nil, err
		default:
			table.Rows = append(table.Rows, row)
			a.logger.Debug("catchment aggregated", zap.String("catchment", c.ID), zap.Int("index", i))
		}

		if a.opts.Progress != nil {
			a.opts.Progress(i+1, len(list))
		}
	}

	table.Round(a.opts.Decimals)
	return table, nil
}

// AggregateCatchment runs all extractors for one catchment and merges
// their rows. The catchment must already be in the base map CRS.
func (a *Aggregator) AggregateCatchment(base *Layer, c Catchment) (Row, error) {
	rows := make([]CategoryRow, len(a.extractors))
	for i, e := range a.extractors {
		row, err := e.Extract(base, c)
		if err != nil {
			return Row{}, fmt.Errorf("extract %s: %w", e.Attribute().Name, err)
		}
		rows[i] = row
	}
	return MergeRows(a.vocab.Shared, rows)
}

// MergeRows concatenates category rows of one catchment and collapses every
// shared category into one value. All rows must report the identical value
// for a shared category; any difference is a *CollapseMismatchError.
func MergeRows(shared SharedCategories, rows []CategoryRow) (Row, error) {
	if len(rows) == 0 {
		return Row{}, errors.New("merge: no rows")
	}

	id := rows[0].CatchmentID
	merged := Row{ID: id}
	for _, r := range rows {
		if r.CatchmentID != id {
			return Row{}, fmt.Errorf("merge: rows of catchments %s and %s", id, r.CatchmentID)
		}
		merged.Values = append(merged.Values, r.Values...)
	}

	for _, key := range shared.Keys() {
		first := rows[0].Shared[key]
		for _, r := range rows[1:] {
			if r.Shared[key] != first {
				values := make(map[string]float64, len(rows))
				for _, rr := range rows {
					values[rr.Attribute] = rr.Shared[key]
				}
				return Row{}, &CollapseMismatchError{CatchmentID: id, Category: key, Values: values}
			}
		}
		merged.Values = append(merged.Values, first)
	}

	return merged, nil
}

// ExtractHydrogeologyAttributes computes the output table with the built-in
// vocabulary and default options.
func ExtractHydrogeologyAttributes(ctx context.Context, base, catchments *Layer, idField string) (*Table, error) {
	agg, err := NewAggregator(DefaultVocabulary(), DefaultAggregateOptions())
	if err != nil {
		return nil, err
	}
	return agg.Aggregate(ctx, base, catchments, idField)
}

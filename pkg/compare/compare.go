// Package compare runs the same input rows through one or more predictors
// and lines the outputs up against ground-truth labels for manual
// inspection. It is a plain batch-map: no reordering, no deduplication, one
// output per input row per predictor.
package compare

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// Predictor is the minimal surface the comparator needs; *client.Predictor
// satisfies it.
type Predictor interface {
	Predict(ctx context.Context, row []float64) (float64, error)
	EndpointName() string
}

// Column holds one predictor's outputs, index-aligned with the input rows.
type Column struct {
	Name        string
	Predictions []float64
}

// Report is the collected comparison result.
type Report struct {
	Rows    [][]float64
	Truth   []float64
	Columns []Column
}

// Run invokes each predictor once per row, sequentially and in input order.
// truth may be nil; when present it must have one label per row. Any predict
// error aborts the run with context about the failing row and endpoint.
func Run(ctx context.Context, rows [][]float64, truth []float64, predictors ...Predictor) (*Report, error) {
	if len(predictors) == 0 {
		return nil, fmt.Errorf("no predictors given")
	}
	if truth != nil && len(truth) != len(rows) {
		return nil, fmt.Errorf("%d truth labels for %d rows", len(truth), len(rows))
	}
	rep := &Report{Rows: rows, Truth: truth}
	for _, p := range predictors {
		col := Column{Name: p.EndpointName(), Predictions: make([]float64, 0, len(rows))}
		for i, row := range rows {
			v, err := p.Predict(ctx, row)
			if err != nil {
				return nil, fmt.Errorf("predict row %d on %s: %w", i, p.EndpointName(), err)
			}
			col.Predictions = append(col.Predictions, v)
		}
		rep.Columns = append(rep.Columns, col)
	}
	return rep, nil
}

// MaxDeviation returns the largest absolute difference between two columns.
func (r *Report) MaxDeviation(a, b int) float64 {
	max := 0.0
	for i := range r.Columns[a].Predictions {
		d := math.Abs(r.Columns[a].Predictions[i] - r.Columns[b].Predictions[i])
		if d > max {
			max = d
		}
	}
	return max
}

// Agree reports whether every pair of columns agrees within tol on every row.
func (r *Report) Agree(tol float64) bool {
	for a := 0; a < len(r.Columns); a++ {
		for b := a + 1; b < len(r.Columns); b++ {
			if r.MaxDeviation(a, b) > tol {
				return false
			}
		}
	}
	return true
}

// Render writes a plain text table: one line per row with the truth label
// (when present) and each endpoint's prediction.
func (r *Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "row")
	if r.Truth != nil {
		fmt.Fprint(tw, "\ttruth")
	}
	for _, col := range r.Columns {
		fmt.Fprintf(tw, "\t%s", col.Name)
	}
	fmt.Fprintln(tw)
	for i := range r.Rows {
		fmt.Fprintf(tw, "%d", i)
		if r.Truth != nil {
			fmt.Fprintf(tw, "\t%s", strconv.FormatFloat(r.Truth[i], 'g', -1, 64))
		}
		for _, col := range r.Columns {
			fmt.Fprintf(tw, "\t%s", strconv.FormatFloat(col.Predictions[i], 'g', -1, 64))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

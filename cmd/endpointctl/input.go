package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// parseRow turns "1.5,2,3" into a feature vector.
func parseRow(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("--row is required")
	}
	parts := strings.Split(s, ",")
	row := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric feature %q", p)
		}
		row = append(row, v)
	}
	return row, nil
}

// readLabeledCSV reads a test file in the usual tabular-training layout:
// ground-truth label first, features after, one example per line.
func readLabeledCSV(path string) (rows [][]float64, truth []float64, err error) {
	if path == "" {
		return nil, nil, fmt.Errorf("--input is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	recs, err := rd.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	for i, rec := range recs {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%s line %d: need label and at least one feature", path, i+1)
		}
		label, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: bad label %q", path, i+1, rec[0])
		}
		row := make([]float64, 0, len(rec)-1)
		for _, fld := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(fld), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d: bad feature %q", path, i+1, fld)
			}
			row = append(row, v)
		}
		truth = append(truth, label)
		rows = append(rows, row)
	}
	return rows, truth, nil
}

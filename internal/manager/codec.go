package manager

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"endpointd/pkg/types"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeJSON = "application/json"
)

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// parseRows decodes an invocation body into feature rows.
// CSV: one row per line, comma-joined numbers. JSON: {"instances": [[...]]},
// a bare array of rows, or a single row.
func parseRows(contentType string, body []byte) ([][]float64, error) {
	switch normalizeContentType(contentType) {
	case contentTypeCSV:
		return parseCSVRows(body)
	case contentTypeJSON:
		return parseJSONRows(body)
	default:
		return nil, ErrValidation("unsupported content type: " + contentType)
	}
}

func parseCSVRows(body []byte) ([][]float64, error) {
	rd := csv.NewReader(bytes.NewReader(body))
	rd.FieldsPerRecord = -1
	var rows [][]float64
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrValidation("malformed CSV payload: " + err.Error())
		}
		row := make([]float64, 0, len(rec))
		for _, f := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, ErrValidation("non-numeric feature value: " + f)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrValidation("empty payload")
	}
	return rows, nil
}

func parseJSONRows(body []byte) ([][]float64, error) {
	var wrapped struct {
		Instances [][]float64 `json:"instances"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Instances != nil {
		if len(wrapped.Instances) == 0 {
			return nil, ErrValidation("empty payload")
		}
		return wrapped.Instances, nil
	}
	var rows [][]float64
	if err := json.Unmarshal(body, &rows); err == nil {
		if len(rows) == 0 {
			return nil, ErrValidation("empty payload")
		}
		return rows, nil
	}
	var row []float64
	if err := json.Unmarshal(body, &row); err == nil {
		if len(row) == 0 {
			return nil, ErrValidation("empty payload")
		}
		return [][]float64{row}, nil
	}
	return nil, ErrValidation("malformed JSON payload")
}

// encodePredictions renders predictions per the accept type and returns the
// body plus the response content type.
func encodePredictions(accept string, preds []float64) ([]byte, string, error) {
	switch normalizeContentType(accept) {
	case contentTypeJSON, "":
		b, err := json.Marshal(types.InvocationResponse{Predictions: preds})
		if err != nil {
			return nil, "", err
		}
		return b, contentTypeJSON, nil
	case contentTypeCSV:
		var sb strings.Builder
		for i, p := range preds {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		}
		sb.WriteByte('\n')
		return []byte(sb.String()), contentTypeCSV, nil
	default:
		return nil, "", ErrValidation("unsupported accept type: " + accept)
	}
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"endpointd/pkg/types"
)

// Encoding is the closed set of request/response serializations a Predictor
// can use. It is fixed at construction; there is no mutable serializer slot.
type Encoding int

const (
	// EncodingCSV sends comma-joined feature rows and expects a JSON
	// predictions response. The common tabular-model arrangement.
	EncodingCSV Encoding = iota
	// EncodingJSON sends {"instances": [...]} and expects JSON back.
	EncodingJSON
)

func (e Encoding) contentType() string {
	if e == EncodingJSON {
		return "application/json"
	}
	return "text/csv"
}

func (e Encoding) String() string {
	if e == EncodingJSON {
		return "json"
	}
	return "csv"
}

// ParseEncoding maps a config string to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return EncodingCSV, nil
	case "json":
		return EncodingJSON, nil
	default:
		return EncodingCSV, fmt.Errorf("unknown encoding %q", s)
	}
}

// Predictor is a lightweight handle: an endpoint name plus serialization
// settings. It is obtained from Deploy, or attached to an endpoint created
// in a previous session without redeploying anything.
type Predictor struct {
	c    *Client
	name string
	enc  Encoding
}

// AttachPredictor binds a Predictor to an existing endpoint by name. No
// remote call is made; a bad name surfaces on the first Predict.
func (c *Client) AttachPredictor(name string, enc Encoding) *Predictor {
	return &Predictor{c: c, name: name, enc: enc}
}

// EndpointName returns the remote endpoint this predictor is bound to.
func (p *Predictor) EndpointName() string { return p.name }

// Predict scores a single feature row and returns the scalar prediction.
func (p *Predictor) Predict(ctx context.Context, row []float64) (float64, error) {
	preds, err := p.PredictBatch(ctx, [][]float64{row})
	if err != nil {
		return 0, err
	}
	if len(preds) != 1 {
		return 0, fmt.Errorf("expected 1 prediction, got %d", len(preds))
	}
	return preds[0], nil
}

// PredictBatch scores rows in order and returns predictions in the same
// order, one per row.
func (p *Predictor) PredictBatch(ctx context.Context, rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	payload, err := p.encodeRows(rows)
	if err != nil {
		return nil, err
	}
	body, err := p.c.InvokeEndpoint(ctx, p.name, p.enc.contentType(), "application/json", payload)
	if err != nil {
		return nil, err
	}
	var resp types.InvocationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if len(resp.Predictions) != len(rows) {
		return nil, fmt.Errorf("sent %d rows, got %d predictions", len(rows), len(resp.Predictions))
	}
	return resp.Predictions, nil
}

// Delete tears down the predictor's endpoint.
func (p *Predictor) Delete(ctx context.Context, deleteConfig bool) error {
	return p.c.DeleteEndpoint(ctx, p.name, deleteConfig)
}

func (p *Predictor) encodeRows(rows [][]float64) ([]byte, error) {
	switch p.enc {
	case EncodingJSON:
		return json.Marshal(map[string][][]float64{"instances": rows})
	default:
		var sb strings.Builder
		for _, row := range rows {
			for i, v := range row {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
			sb.WriteByte('\n')
		}
		return []byte(sb.String()), nil
	}
}

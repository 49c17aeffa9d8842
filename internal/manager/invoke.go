package manager

import (
	"context"
	"errors"
	"time"

	"endpointd/internal/scorer"
	"endpointd/pkg/types"
)

// Invoke scores an invocation payload against a running endpoint. It decodes
// the body per contentType, scores each row in order, and encodes the
// predictions per accept. Empty contentType/accept fall back to the
// endpoint's configured serialization.
func (m *Manager) Invoke(ctx context.Context, name, contentType, accept string, body []byte) ([]byte, string, error) {
	m.mu.RLock()
	inst, ok := m.endpoints[name]
	m.mu.RUnlock()
	if !ok {
		return nil, "", ErrEndpointNotFound(name)
	}
	m.mu.RLock()
	st := inst.state
	sp := inst.spec
	m.mu.RUnlock()
	if st != types.StateRunning {
		return nil, "", notReadyError{name: name, state: string(st)}
	}
	if contentType == "" {
		contentType = sp.ContentType
	}
	if accept == "" {
		accept = sp.Accept
	}

	rows, err := parseRows(contentType, body)
	if err != nil {
		return nil, "", err
	}

	release, err := m.beginScore(ctx, name)
	if err != nil {
		return nil, "", err
	}
	defer release()

	preds := make([]float64, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		p, err := inst.scorer.Score(row)
		if err != nil {
			var dim *scorer.DimensionError
			if errors.As(err, &dim) {
				return nil, "", ErrValidation(err.Error())
			}
			return nil, "", err
		}
		preds = append(preds, p)
	}

	out, outCT, err := encodePredictions(accept, preds)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	inst.lastInvoked = time.Now()
	m.invocationsTotal++
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "invoke", Endpoint: name, Fields: map[string]any{"rows": len(rows)}})
	return out, outCT, nil
}

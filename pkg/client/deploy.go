package client

import (
	"context"
	"time"

	"endpointd/pkg/types"
)

// Deploy provisions an endpoint and blocks until it is running, returning a
// Predictor bound to it. Creation failures and endpoints that land in the
// failed state both surface as errors; the ctx deadline bounds the wait.
//
// Local platforms answer the create call with the endpoint already running;
// hosted ones may take minutes, hence the polling loop.
func (c *Client) Deploy(ctx context.Context, spec types.EndpointSpec, enc Encoding) (*Predictor, error) {
	ep, err := c.CreateEndpoint(ctx, spec)
	if err != nil {
		return nil, err
	}
	name := ep.Name
	for {
		switch ep.State {
		case types.StateRunning:
			return c.AttachPredictor(name, enc), nil
		case types.StateFailed:
			return nil, &DeployError{Name: name, Reason: ep.FailureReason}
		}
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		ep, err = c.DescribeEndpoint(ctx, name)
		if err != nil {
			return nil, err
		}
	}
}

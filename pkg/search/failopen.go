package search

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// FailOpenClient converts request failures of the wrapped client into
// an empty result set. The failure is logged and never returned, so callers
// cannot distinguish "no results" from "request failed" besides the log.
type FailOpenClient struct {
	client Client
}

// Search implements Client.
func (c *FailOpenClient) Search(ctx context.Context, query Query) ([]Result, error) {
	results, err := c.client.Search(ctx, query)
	if err != nil {
		if !errors.Is(err, ErrRequest) {
			return nil, errors.WithStack(err)
		}

		slog.ErrorContext(ctx, "search request failed, returning no results", slog.String("query", query.Text), slog.Any("error", err))

		return []Result{}, nil
	}

	if results == nil {
		results = []Result{}
	}

	return results, nil
}

var _ Client = &FailOpenClient{}

func FailOpen(client Client) *FailOpenClient {
	return &FailOpenClient{client: client}
}

package google

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/cseprobe/pkg/search"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const DefaultEndpoint = "https://www.googleapis.com/"

// Client implements the search.Client interface using Google Custom Search API.
type Client struct {
	apiKey     string
	cx         string
	endpoint   string
	httpClient *http.Client
}

type OptionFunc func(c *Client)

// WithEndpoint sets the API root, the request path "customsearch/v1" is
// resolved against it.
func WithEndpoint(endpoint string) OptionFunc {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Search implements the search.Client interface.
// Every failure is returned as a *search.RequestError.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	query = query.WithDefaults()

	service, err := customsearch.NewService(ctx,
		option.WithHTTPClient(c.httpClient),
		option.WithEndpoint(c.endpoint),
	)
	if err != nil {
		return nil, errors.WithStack(search.NewRequestError(query, err))
	}

	slog.DebugContext(ctx, "executing search",
		slog.String("query", query.Text),
		slog.Int64("start", query.Start),
		slog.String("language", query.Language),
	)

	call := service.Cse.List().
		Q(query.Text).
		Cx(c.cx).
		Start(query.Start).
		Lr(query.Language).
		Context(ctx)

	// The key is set explicitly as the service does not inject it when
	// an HTTP client is provided
	res, err := call.Do(googleapi.QueryParameter("key", c.apiKey))
	if err != nil {
		return nil, errors.WithStack(search.NewRequestError(query, err))
	}

	results := make([]search.Result, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}

		results = append(results, search.Result{
			Title:       item.Title,
			URL:         item.Link,
			Description: item.Snippet,
		}.WithDefaults())
	}

	slog.DebugContext(ctx, "search completed", slog.Int("results", len(results)))

	return results, nil
}

// NewClient creates a new Google Custom Search API client.
func NewClient(apiKey, cx string, funcs ...OptionFunc) *Client {
	client := &Client{
		apiKey:     apiKey,
		cx:         cx,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}

	for _, fn := range funcs {
		fn(client)
	}

	return client
}

// Ensure Client implements search.Client
var _ search.Client = &Client{}

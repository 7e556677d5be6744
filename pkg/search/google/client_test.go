package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/bornholm/cseprobe/pkg/search"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient("test-key", "test-cx",
		WithEndpoint(server.URL+"/"),
		WithHTTPClient(server.Client()),
	)
}

func TestClientSearch(t *testing.T) {
	var requested atomic.Pointer[url.URL]

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested.Store(r.URL)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"title":"A","link":"http://a","snippet":"s"}]}`))
	})

	results, err := client.Search(context.Background(), search.Query{
		Text:     `filetype:sql "MySQL dump"`,
		Start:    1,
		Language: "lang_es",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Log(spew.Sdump(results))

	require.Len(t, results, 1)
	assert.Equal(t, search.Result{Title: "A", URL: "http://a", Description: "s"}, results[0])

	u := requested.Load()
	require.NotNil(t, u)
	assert.Equal(t, "/customsearch/v1", u.Path)

	params := u.Query()
	assert.Equal(t, "test-key", params.Get("key"))
	assert.Equal(t, "test-cx", params.Get("cx"))
	assert.Equal(t, `filetype:sql "MySQL dump"`, params.Get("q"))
	assert.Equal(t, "1", params.Get("start"))
	assert.Equal(t, "lang_es", params.Get("lr"))
}

func TestClientSearchQueryDefaults(t *testing.T) {
	var requested atomic.Pointer[url.URL]

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested.Store(r.URL)
		w.Write([]byte(`{}`))
	})

	_, err := client.Search(context.Background(), search.Query{Text: "golang"})
	require.NoError(t, err)

	params := requested.Load().Query()
	assert.Equal(t, "1", params.Get("start"))
	assert.Equal(t, "lang_es", params.Get("lr"))
}

func TestClientSearchResults(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []search.Result
	}{
		{
			name: "missing items key",
			body: `{"kind":"customsearch#search"}`,
			want: []search.Result{},
		},
		{
			name: "empty items",
			body: `{"items":[]}`,
			want: []search.Result{},
		},
		{
			name: "missing fields use placeholders",
			body: `{"items":[{"title":"Only title"},{"link":"http://b"},{"snippet":"only snippet"}]}`,
			want: []search.Result{
				{Title: "Only title", URL: search.PlaceholderURL, Description: search.PlaceholderDescription},
				{Title: search.PlaceholderTitle, URL: "http://b", Description: search.PlaceholderDescription},
				{Title: search.PlaceholderTitle, URL: search.PlaceholderURL, Description: "only snippet"},
			},
		},
		{
			name: "order is preserved",
			body: `{"items":[{"title":"1","link":"http://1","snippet":"one"},{"title":"2","link":"http://2","snippet":"two"}]}`,
			want: []search.Result{
				{Title: "1", URL: "http://1", Description: "one"},
				{Title: "2", URL: "http://2", Description: "two"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			})

			results, err := client.Search(context.Background(), search.Query{Text: "test"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, results)
		})
	}
}

func TestClientSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non 2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"items": [`))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)

			results, err := client.Search(context.Background(), search.Query{Text: "test"})
			require.Error(t, err)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, search.ErrRequest)

			var requestErr *search.RequestError
			require.ErrorAs(t, err, &requestErr)
			assert.Equal(t, "test", requestErr.Query.Text)
		})
	}
}

func TestClientSearchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/"
	server.Close()

	client := NewClient("test-key", "test-cx", WithEndpoint(endpoint))

	_, err := client.Search(context.Background(), search.Query{Text: "test"})
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrRequest)
}

package search

import "context"

const (
	DefaultStart    int64 = 1
	DefaultLanguage       = "lang_es"
)

const (
	PlaceholderTitle       = "No title"
	PlaceholderURL         = "No link"
	PlaceholderDescription = "No description"
)

type Client interface {
	Search(ctx context.Context, query Query) ([]Result, error)
}

// Query describes a single search request.
type Query struct {
	Text string
	// Start is the 1-based index of the first result to return
	Start int64
	// Language restricts results to a language collection, e.g. "lang_es"
	Language string
}

// WithDefaults returns a copy of the query with unset fields filled in.
func (q Query) WithDefaults() Query {
	if q.Start < 1 {
		q.Start = DefaultStart
	}

	if q.Language == "" {
		q.Language = DefaultLanguage
	}

	return q
}

type Result struct {
	Title       string
	URL         string
	Description string
}

// WithDefaults returns a copy of the result where empty fields are replaced
// by their placeholder text.
func (r Result) WithDefaults() Result {
	if r.Title == "" {
		r.Title = PlaceholderTitle
	}

	if r.URL == "" {
		r.URL = PlaceholderURL
	}

	if r.Description == "" {
		r.Description = PlaceholderDescription
	}

	return r
}
